package token

var keywords = map[string]Kind{
	"true":        KwTrue,
	"false":       KwFalse,
	"case":        KwCase,
	"default":     KwDefault,
	"struct":      KwStruct,
	"class":       KwClass,
	"interface":   KwInterface,
	"namespace":   KwNamespace,
	"cbuffer":     KwCBuffer,
	"tbuffer":     KwTBuffer,
	"technique":   KwTechnique,
	"technique10": KwTechnique,
	"technique11": KwTechnique,
	"pass":        KwPass,
	"compile":     KwCompile,
	"register":    KwRegister,
	"packoffset":  KwPackOffset,
	"public":      KwPublic,
	"private":     KwPrivate,
	"protected":   KwProtected,
}

// LookupKeyword reports the keyword kind of ident. Keywords are case
// sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Modifier words are plain identifiers to the lexer. The front end masks
// them when they prefix a declaration, since a C++ grammar has no slot for
// them.
var modifiers = map[string]struct{}{
	"in":               {},
	"out":              {},
	"inout":            {},
	"uniform":          {},
	"groupshared":      {},
	"precise":          {},
	"shared":           {},
	"nointerpolation":  {},
	"linear":           {},
	"centroid":         {},
	"noperspective":    {},
	"sample":           {},
	"row_major":        {},
	"column_major":     {},
	"snorm":            {},
	"unorm":            {},
	"globallycoherent": {},
}

// IsModifier reports whether word is an HLSL-only declaration modifier.
func IsModifier(word string) bool {
	_, ok := modifiers[word]
	return ok
}
