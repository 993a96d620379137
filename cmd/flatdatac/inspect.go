package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/internal/diagio"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Compile a schema file and print its resolved tree",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "inspect requires exactly one schema file")
			os.Exit(1)
		}

		text, err := readSchemaText(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		root, err := compiler.Compile(text)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagio.Render(err))
			os.Exit(1)
		}

		if GetFlag(cmd, "json") {
			printJSON(root)
			return
		}
		printTree(root)
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print the tree as JSON instead of plain text")
}

func printTree(root *ast.Root) {
	for _, n := range ast.Iterate(root) {
		if n.Path() == "" {
			continue
		}
		if _, isRef := n.(ast.Reference); isRef {
			continue
		}
		if s, ok := n.(*ast.Structure); ok {
			fmt.Printf("%-12s %-40s size_in_bits=%d size_in_bytes=%d\n", kindName(n), n.Path(), s.SizeInBits, s.SizeInBytes())
			continue
		}
		fmt.Printf("%-12s %-40s\n", kindName(n), n.Path())
	}
}

type inspectNode struct {
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	SizeInBits  *int   `json:"size_in_bits,omitempty"`
	SizeInBytes *int   `json:"size_in_bytes,omitempty"`
}

func printJSON(root *ast.Root) {
	var out []inspectNode
	for _, n := range ast.Iterate(root) {
		if n.Path() == "" {
			continue
		}
		if _, isRef := n.(ast.Reference); isRef {
			continue
		}
		entry := inspectNode{Kind: kindName(n), Path: n.Path()}
		if s, ok := n.(*ast.Structure); ok {
			bits, bytes := s.SizeInBits, s.SizeInBytes()
			entry.SizeInBits = &bits
			entry.SizeInBytes = &bytes
		}
		out = append(out, entry)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func kindName(n ast.Node) string {
	switch n.(type) {
	case *ast.Namespace:
		return "Namespace"
	case *ast.Constant:
		return "Constant"
	case *ast.Enumeration:
		return "Enumeration"
	case *ast.EnumerationValue:
		return "EnumerationValue"
	case *ast.Structure:
		return "Structure"
	case *ast.Field:
		return "Field"
	case *ast.Archive:
		return "Archive"
	case *ast.Instance:
		return "Instance"
	case *ast.Vector:
		return "Vector"
	case *ast.Multivector:
		return "Multivector"
	case *ast.RawData:
		return "RawData"
	case *ast.SubArchive:
		return "SubArchive"
	case *ast.BoundResource:
		return "BoundResource"
	case *ast.ExplicitReference:
		return "ExplicitReference"
	default:
		return fmt.Sprintf("%T", n)
	}
}
