// Command flatdatac is the schema compiler front end's CLI: check, inspect,
// and normalize flatdata schema files.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
