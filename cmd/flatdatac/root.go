package main

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flatdatac",
	Short: "Schema compiler front end for flatdata",
	Long:  "flatdatac parses, resolves, validates and normalizes flatdata schema files.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd reports the build version, grounded on go-corset's rootCmd
// version handling (runtime/debug.ReadBuildInfo when built via "go install").
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the flatdatac version",
	Run: func(cmd *cobra.Command, args []string) {
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("flatdatac %s\n", info.Main.Version)
			return
		}
		fmt.Println("flatdatac (unknown version)")
	},
}
