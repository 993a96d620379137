// Package compiler provides the one-shot entry point a back end or CLI
// command uses to turn schema text into a resolved, validated tree: parse,
// build, resolve, validate, in that order, mirroring flatdata-generator's
// SyntaxTreeGenerator.compile. On success it returns the tree; on the first
// error it returns that error, with no partial tree (spec §7: no partial
// results on failure).
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/builder"
	"github.com/flatdata/schemac/errs"
	"github.com/flatdata/schemac/grammar"
	"github.com/flatdata/schemac/normalize"
	"github.com/flatdata/schemac/resolver"
	"github.com/flatdata/schemac/validate"
)

// Compile parses text, builds the AST, resolves every reference, and runs
// every semantic/layout pass, returning the completed tree.
func Compile(text string) (*ast.Root, error) {
	parser, err := grammar.NewParser()
	if err != nil {
		return nil, fmt.Errorf("building schema parser: %w", err)
	}

	schema, err := parser.ParseString("", text)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			source := ""
			if lines := strings.Split(text, "\n"); pos.Line >= 1 && pos.Line <= len(lines) {
				source = lines[pos.Line-1]
			}
			return nil, &errs.ParseError{Line: pos.Line, Column: pos.Column, Source: source, Message: perr.Message()}
		}
		return nil, err
	}

	root, err := builder.Build(schema)
	if err != nil {
		return nil, err
	}

	if err := resolver.Resolve(root); err != nil {
		return nil, err
	}

	if err := validate.Validate(root); err != nil {
		return nil, err
	}

	return root, nil
}

// NormalizedSchema renders node's canonical, dependency-closed schema text
// within the resolved tree, the form persisted as a `.schema` sidecar and
// compared byte-for-byte at load time.
func NormalizedSchema(tree *ast.Root, node ast.Node) (string, error) {
	return normalize.Normalize(node)
}
