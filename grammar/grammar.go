// Package grammar defines the typed AST for flatdata schema (.fbs-ish
// ".flatdata") source files.
//
// "Parse, not validate" — if a schema file parses, it is structurally valid;
// everything that can still go wrong (undefined symbols, width mismatches,
// cycles) is a semantic question left to builder/resolver/validate.
//
// The grammar maps 1:1 onto the parse-tree shapes consumed by builder.Build,
// which turns each *NamespaceDecl into ast.Namespace/Structure/Enumeration/
// Archive nodes.
package grammar

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ---------------------------------------------------------------------------
// Lexer
// ---------------------------------------------------------------------------

var schemaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[\s\S]*?\*/`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[{}()<>:;,.=@]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
})

// ---------------------------------------------------------------------------
// Shared fragments
// ---------------------------------------------------------------------------

// QualifiedIdent is a dotted identifier, e.g. "a.b.Struct", optionally
// prefixed with a leading "." to name an already fully-qualified path
// (e.g. ".a.b.Struct"), mirroring grammar.py's qualified_identifier, whose
// pyparsing Word includes "." among its leading characters.
type QualifiedIdent struct {
	Pos     lexer.Position
	Leading bool     `(@".")?`
	Parts   []string `@Ident ("." @Ident)*`
}

// String renders the dotted form, with its leading "." if present.
func (q *QualifiedIdent) String() string {
	if q == nil {
		return ""
	}
	if q.Leading {
		return "." + strings.Join(q.Parts, ".")
	}
	return strings.Join(q.Parts, ".")
}

// SignedLiteral is a decimal or hex integer literal, optionally negative.
type SignedLiteral struct {
	Pos lexer.Position
	Hex string `(  @Hex`
	Dec string ` | @Int )`
}

// Value returns the literal's parsed integer value.
func (l *SignedLiteral) Value() (int64, error) {
	if l.Hex != "" {
		return strconv.ParseInt(l.Hex[2:], 16, 64)
	}
	return strconv.ParseInt(l.Dec, 10, 64)
}

// Doc captures zero or more consecutive comment lines immediately preceding
// a declaration; comments are not elided so every declaration can carry one.
type Doc struct {
	Pos   lexer.Position
	Lines []string `@Comment*`
}

// Text renders the accumulated comment lines, stripped of their leading
// comment markers and surrounding whitespace, newline-joined.
func (d *Doc) Text() string {
	if d == nil || len(d.Lines) == 0 {
		return ""
	}
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		l = strings.TrimPrefix(l, "//")
		l = strings.TrimPrefix(l, "/*")
		l = strings.TrimSuffix(l, "*/")
		out[i] = strings.TrimSpace(l)
	}
	return strings.Join(out, "\n")
}

// ---------------------------------------------------------------------------
// Top level
// ---------------------------------------------------------------------------

// Schema is the root of a parsed schema file: a sequence of namespace blocks,
// mirroring flatdata-generator's grammar.py top-level production.
type Schema struct {
	Pos        lexer.Position
	Namespaces []*NamespaceDecl `@@*`
}

// NamespaceDecl is `namespace a.b.c { ... }`: entries declared inside are
// attached, by the builder, under nested ast.Namespace nodes for each dotted
// segment.
type NamespaceDecl struct {
	Pos     lexer.Position
	Doc     *Doc            `@@`
	Name    *QualifiedIdent `"namespace" @@`
	Entries []*Entry        `"{" @@* "}"`
}

// Entry is a sum type: exactly one of const/enum/struct/archive declared at
// namespace scope.
type Entry struct {
	Pos     lexer.Position
	Const   *ConstDecl   `  @@`
	Enum    *EnumDecl    `| @@`
	Struct  *StructDecl  `| @@`
	Archive *ArchiveDecl `| @@`
}

// ---------------------------------------------------------------------------
// const
// ---------------------------------------------------------------------------

// ConstDecl is `const u32 NAME = 42;`.
type ConstDecl struct {
	Pos      lexer.Position
	Doc      *Doc            `@@`
	TypeName string          `"const" @Ident`
	Name     string          `@Ident`
	Value    *SignedLiteral  `"=" @@ ";"`
}

// ---------------------------------------------------------------------------
// enum
// ---------------------------------------------------------------------------

// EnumDecl is `enum NAME : u8 { A, B = 4, C };`.
type EnumDecl struct {
	Pos      lexer.Position
	Doc      *Doc            `@@`
	Name     string          `"enum" @Ident`
	TypeName string          `":" @Ident`
	Values   []*EnumValueDecl `"{" @@ ( "," @@ )* ","? "}" ";"?`
}

// EnumValueDecl is one `A` or `A = 4` entry.
type EnumValueDecl struct {
	Pos   lexer.Position
	Doc   *Doc           `@@`
	Name  string         `@Ident`
	Value *SignedLiteral `( "=" @@ )?`
}

// ---------------------------------------------------------------------------
// struct
// ---------------------------------------------------------------------------

// StructDecl is `struct NAME { field: type : width; ... }`.
type StructDecl struct {
	Pos    lexer.Position
	Doc    *Doc         `@@`
	Name   string       `"struct" @Ident`
	Fields []*FieldDecl `"{" @@+ "}"`
}

// FieldDecl is one field line, with an optional leading stack of
// decorations (`@range(name)`, `@const(Ref)`, `@invalid_value(N)`).
type FieldDecl struct {
	Pos         lexer.Position
	Doc         *Doc              `@@`
	Decorations []*FieldDecoration `@@*`
	Name        string             `@Ident`
	TypeName    *QualifiedIdent    `":" @@`
	Width       *int               `( ":" @Int )? ";"`
}

// FieldDecoration is one `@name(...)` or bare `@name` annotation on a field,
// e.g. `@range(y_range)`, `@const(.n.Consts.FOO)`, `@invalid_value(-1)`.
type FieldDecoration struct {
	Pos  lexer.Position
	Name string          `"@" @Ident`
	Arg  *DecorationArg  `( "(" @@ ")" )?`
}

// DecorationArg is either an integer literal or a (possibly qualified)
// symbol reference, the only two argument shapes any decoration takes.
type DecorationArg struct {
	Pos lexer.Position
	Int *SignedLiteral  `(  @@`
	Ref *QualifiedIdent ` | @@ )`
}

// ---------------------------------------------------------------------------
// archive
// ---------------------------------------------------------------------------

// ArchiveDecl is `archive NAME { resource : type; ... }`.
type ArchiveDecl struct {
	Pos     lexer.Position
	Doc     *Doc            `@@`
	Name    string          `"archive" @Ident`
	Members []*ArchiveMember `"{" @@* "}"`
}

// ArchiveMember is a sum type: either a resource declaration or a
// `@bound_implicitly(...)` group declaration.
type ArchiveMember struct {
	Pos      lexer.Position
	Resource *ResourceDecl `  @@`
	Bound    *BoundDecl    `| @@`
}

// ResourceDecl is one `name : resource_type;` line, with optional
// `@optional` / `@explicit_reference(...)` decorations.
type ResourceDecl struct {
	Pos         lexer.Position
	Doc         *Doc                  `@@`
	Decorations []*ResourceDecoration `@@*`
	Name        string                `@Ident`
	Type        *ResourceType         `":" @@ ";"`
}

// ResourceDecoration is `@optional` or
// `@explicit_reference(Source.field, Destination)`.
type ResourceDecoration struct {
	Pos         lexer.Position
	Optional    *OptionalDecoration    `  @@`
	ExplicitRef *ExplicitRefDecoration `| @@`
}

// OptionalDecoration is the bare `@optional` marker.
type OptionalDecoration struct {
	Pos lexer.Position
	Set bool `"@" @"optional"`
}

// ExplicitRefDecoration is `@explicit_reference(Source.field, Destination)`.
type ExplicitRefDecoration struct {
	Pos lexer.Position
	Arg *ExplicitRefArg `"@" "explicit_reference" "(" @@ ")"`
}

// ExplicitRefArg is the `Source.field, Destination` argument list of an
// `@explicit_reference` decoration.
type ExplicitRefArg struct {
	Pos         lexer.Position
	SourceType  string          `@Ident "."`
	SourceField string          `@Ident ","`
	Destination *QualifiedIdent `@@`
}

// ResourceType is one of: vector<T>, multivector<W, T, ...>, raw_data,
// archive Name, or a bare qualified type name (a single-object resource).
type ResourceType struct {
	Pos         lexer.Position
	Vector      *QualifiedIdent   `(  "vector" "<" @@ ">"`
	Multivector *MultivectorType  ` | @@`
	RawData     bool              ` | @"raw_data"`
	SubArchive  *QualifiedIdent   ` | "archive" @@`
	Instance    *QualifiedIdent   ` | @@ )`
}

// MultivectorType is `multivector<33, TypeA, TypeB>`.
type MultivectorType struct {
	Pos   lexer.Position
	Width int               `"multivector" "<" @Int ","`
	Types []*QualifiedIdent `@@ ( "," @@ )* ">"`
}

// BoundDecl is `@bound_implicitly(Name: r1, r2);`.
type BoundDecl struct {
	Pos       lexer.Position
	Doc       *Doc     `@@`
	Name      string   `"@" "bound_implicitly" "(" @Ident ":"`
	Resources []string `@Ident ( "," @Ident )* ")" ";"`
}

// ---------------------------------------------------------------------------
// Parser constructor
// ---------------------------------------------------------------------------

// NewParser builds a participle parser for flatdata schema source.
func NewParser() (*participle.Parser[Schema], error) {
	return participle.Build[Schema](
		participle.Lexer(schemaLexer),
		participle.UseLookahead(4),
		participle.Elide("Whitespace"),
	)
}
