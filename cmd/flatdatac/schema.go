package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/internal/diagio"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <file> <node-path>",
	Short: "Print the normalized schema fragment a node depends on",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "schema requires a schema file and a fully qualified node path")
			os.Exit(1)
		}

		text, err := readSchemaText(args[:1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		root, err := compiler.Compile(text)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagio.Render(err))
			os.Exit(1)
		}

		node, err := root.Find(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := compiler.NormalizedSchema(root, node)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}
