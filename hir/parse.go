package hir

// ParseNode is the minimal view the Builder needs of one parse-tree node.
// lang packages implement it by wrapping *sitter.Node so that hir never
// imports go-tree-sitter or lang directly (spec.md §9 polymorphism note:
// per-language behavior is parameterized at the visitor level).
type ParseNode interface {
	KindID() uint16
	FieldID() uint16
	StartByte() uint32
	EndByte() uint32
	ChildCount() int
	Child(i int) ParseNode
	// Text returns the node's literal source text, used for Text/Ident/File
	// payloads. Callers slice lazily; implementations typically hold the
	// source buffer and return src[StartByte:EndByte].
	Text() string
}

// Classifier maps a language's tree-sitter grammar kind ids onto the
// uniform HIR Kind space (spec.md §4.3 hir_kind).
type Classifier interface {
	HirKind(kindID uint16) Kind
}
