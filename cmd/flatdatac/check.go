package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/config"
	"github.com/flatdata/schemac/internal/diagio"
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Parse, build, resolve, validate and lay out one or more schema files",
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := resolveSchemaPaths(cmd, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		log.Debug("reading schema files")
		text, err := readSchemaText(paths)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		log.Debug("parsing schema")
		root, err := compiler.Compile(text)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagio.Render(err))
			os.Exit(1)
		}

		log.Debugf("compiled %d top-level namespace(s)", len(root.Children()))
		fmt.Printf("ok: %d file(s) checked\n", len(paths))
	},
}

func init() {
	checkCmd.Flags().String("project", "", "path to a flatdatac.yaml project file")
}

// resolveSchemaPaths returns the project's resolved schema paths when
// --project is set, otherwise the positional file arguments.
func resolveSchemaPaths(cmd *cobra.Command, args []string) ([]string, error) {
	projectPath := GetString(cmd, "project")
	if projectPath == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("check requires at least one schema file, or --project")
		}
		return args, nil
	}
	project, err := config.Load(projectPath)
	if err != nil {
		return nil, err
	}
	return project.ResolvePaths(projectPath), nil
}
