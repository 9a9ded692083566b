package extraction

// DefaultCap is the number of entries kept per category when no cap is configured.
const DefaultCap = 10

// Declaration is a declared type or callable and the line it starts on.
// Redeclarations of the same name are separate entries.
type Declaration struct {
	Name string
	Line int
}

// ImportReference is one imported entity.
// Path is "module.symbol" for from-imports and the dotted module name for plain imports.
type ImportReference struct {
	Path string
	Line int
}

// CallSite is a call expression. Callee is a bare name or a dotted chain
// such as "self.logger.info"; arguments are not retained.
type CallSite struct {
	Callee string
	Line   int
}

// Summary is the structural summary of one source file.
type Summary struct {
	Types     CappedList[Declaration]
	Callables CappedList[Declaration]
	Imports   CappedList[ImportReference]

	// Target is the first callable in traversal order; nil when the file has none.
	Target *Declaration

	// CallsInTarget holds the calls made inside Target's subtree.
	CallsInTarget CappedList[CallSite]
}
