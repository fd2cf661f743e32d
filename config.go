package main

// Config holds the complete configuration for a compile run. It maps
// directly to command line flags, the same plain-struct-with-kong-tags
// shape the teacher's own Config uses -- no env/Viper loader layered on
// top.
type Config struct {
	// Dir is the directory tree to compile. Every ".rb" file found beneath
	// it (excluding ExcludeGlob matches) is compiled to an adjacent ".js".
	Dir string `arg:"" optional:"" help:"Directory of Ruby sources to compile." type:"path" default:"."`

	// ExcludeGlob lists glob patterns (matched against paths relative to
	// Dir) to skip during the directory walk.
	ExcludeGlob []string `name:"exclude-glob" help:"Glob patterns to exclude specific files or folders from compilation."`

	// DryRun prints a unified diff of what would be written instead of
	// writing any ".js" file to disk.
	DryRun bool `name:"dry-run" help:"Print a diff of the compiled output instead of writing files."`

	// ESLevel selects the target ECMAScript level (5, or a year 2015..2022).
	ESLevel int `name:"eslevel" help:"Target ECMAScript level (5, or 2015-2022)." default:"2015"`

	// Strict prepends "use strict"; to every compiled file.
	Strict bool `name:"strict" help:"Prepend \"use strict\"; to compiled output."`

	// Module selects the emitted module system, "esm" or "cjs".
	Module string `name:"module" help:"Emitted module system: esm or cjs." default:"esm"`

	// Comparison selects how Ruby == lowers: "equality" (==) or
	// "identity" (===).
	Comparison string `name:"comparison" help:"How == lowers: equality or identity." default:"equality"`

	// Or selects how Ruby 'or' lowers: "auto" or "nullish".
	Or string `name:"or" help:"How 'or' lowers: auto or nullish." default:"auto"`

	// Truthy selects the truthiness translation strategy: "js" or "ruby".
	Truthy string `name:"truthy" help:"Truthiness strategy: js or ruby." default:"js"`

	// Width is the target line width for the serializer's wrap/compact
	// decisions.
	Width int `name:"width" help:"Target output line width." default:"80"`

	// Filters lists the filter identities to run, in the order named (an
	// empty list means no filter passes -- the converter runs directly on
	// the parsed AST).
	Filters []string `name:"filters" help:"Filter identities to run, e.g. autoreturn,camelCase,esm,strict."`

	// Exclude/IncludeOnly gate the functions filter's rename vocabulary
	// (see internal/config.Options). Include is carried into Options but
	// no filter reads it.
	Include     []string `name:"include" help:"Method names for the functions filter (accepted, not read by any filter)."`
	Exclude     []string `name:"exclude" help:"Method names the functions filter must never rename."`
	IncludeOnly []string `name:"include-only" help:"Restrict the functions filter's renames to only these names."`

	// AstSexp, when set, is compiled directly as a StubParser s-expression
	// instead of reading Dir, for exercising the pipeline without a real
	// Ruby parser (SPEC_FULL.md §15).
	AstSexp string `name:"ast-sexp" help:"Compile a single s-expression AST literal instead of scanning Dir."`

	// AstJson, when set, is a JSON encoding of *ast.Node compiled
	// directly instead of reading Dir, the same ingestion escape hatch
	// as AstSexp in an alternate notation (SPEC_FULL.md §15).
	AstJson string `name:"ast-json" help:"Compile a JSON-encoded *ast.Node literal instead of scanning Dir."`

	// ListFilters prints the registered filter table and exits.
	ListFilters bool `name:"list-filters" help:"Print the registered filter identities and exit."`
}
