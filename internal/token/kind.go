package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	IntLit
	FloatLit
	StringLit

	// keywords the masking pass dispatches on
	KwTrue
	KwFalse
	KwCase
	KwDefault
	KwStruct
	KwClass
	KwInterface
	KwNamespace
	KwCBuffer
	KwTBuffer
	KwTechnique
	KwPass
	KwCompile
	KwRegister
	KwPackOffset
	KwPublic
	KwPrivate
	KwProtected

	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	PlusPlus
	MinusMinus
	EqEq
	Bang
	BangEq
	Tilde
	Lt
	LtEq
	Gt
	GtEq
	Shl
	Shr
	Amp
	Pipe
	Caret
	AndAnd
	OrOr
	Question
	Colon
	ColonColon
	Semicolon
	Comma
	Dot
	Arrow
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Hash
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	KwTrue:        "true",
	KwFalse:       "false",
	KwCase:        "case",
	KwDefault:     "default",
	KwStruct:      "struct",
	KwClass:       "class",
	KwInterface:   "interface",
	KwNamespace:   "namespace",
	KwCBuffer:     "cbuffer",
	KwTBuffer:     "tbuffer",
	KwTechnique:   "technique",
	KwPass:        "pass",
	KwCompile:     "compile",
	KwRegister:    "register",
	KwPackOffset:  "packoffset",
	KwPublic:      "public",
	KwPrivate:     "private",
	KwProtected:   "protected",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	PlusPlus:      "++",
	MinusMinus:    "--",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Tilde:         "~",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	AndAnd:        "&&",
	OrOr:          "||",
	Question:      "?",
	Colon:         ":",
	ColonColon:    "::",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Arrow:         "->",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Hash:          "#",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
