package diag

import (
	"fmt"
)

type Code uint16

// Semantic codes reuse the numbers fxc prints (X3004 etc.) so that users can
// search for them; the remaining ranges are private to this toolchain.
const (
	UnknownCode Code = 0

	// front end (tree-sitter lowering)
	SynInfo             Code = 1000
	SynUnexpectedToken  Code = 1001
	SynMissingToken     Code = 1002
	SynUnsupported      Code = 1003
	SynUnknownDirection Code = 1004

	// pre-lexer
	LexUnknownChar              Code = 1010
	LexUnterminatedString       Code = 1011
	LexUnterminatedBlockComment Code = 1012

	// semantic
	SemaInfo                 Code = 3000
	SemaRedefinition         Code = 3003
	SemaUndeclaredIdentifier Code = 3004
	SemaConstructorArgCount  Code = 3014
	SemaCannotConvert        Code = 3017
	SemaInvalidMember        Code = 3018
	SemaInvalidOperands      Code = 3020
	SemaNotCallable          Code = 3021
	SemaOutArgNotLValue      Code = 3025
	SemaInvalidSubscript     Code = 3059
	SemaAmbiguousCall        Code = 3067
	SemaNoMatchingOverload   Code = 3013
	SemaLoopVariableConflict Code = 3078
	SemaReturnTypeMismatch   Code = 3080
	SemaVoidVariable         Code = 3038
	SemaNotAType             Code = 3100
	SemaImplicitTruncation   Code = 3206
	SemaPrototypeMismatch    Code = 3202
	SemaUnknownCompileTarget Code = 3501

	// I/O
	IOLoadFileError Code = 4001

	// observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "syntax error: unexpected token",
	SynMissingToken:             "syntax error: missing token",
	SynUnsupported:              "construct not supported by the front end",
	SynUnknownDirection:         "unknown parameter modifier",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	SemaInfo:                    "Semantic information",
	SemaRedefinition:            "redefinition",
	SemaUndeclaredIdentifier:    "undeclared identifier",
	SemaConstructorArgCount:     "incorrect number of arguments to numeric-type constructor",
	SemaCannotConvert:           "cannot implicitly convert",
	SemaInvalidMember:           "invalid member access",
	SemaInvalidOperands:         "invalid operand types",
	SemaNotCallable:             "expression is not callable",
	SemaOutArgNotLValue:         "out parameters require l-value arguments",
	SemaInvalidSubscript:        "invalid subscript",
	SemaAmbiguousCall:           "ambiguous function call",
	SemaNoMatchingOverload:      "no matching overloaded function",
	SemaLoopVariableConflict:    "loop control variable conflicts with a previous declaration in the outer scope",
	SemaReturnTypeMismatch:      "return type mismatch",
	SemaVoidVariable:            "variable cannot be declared void",
	SemaNotAType:                "name does not denote a type",
	SemaImplicitTruncation:      "implicit truncation of vector type",
	SemaPrototypeMismatch:       "function definition does not match its declaration",
	SemaUnknownCompileTarget:    "unknown shader compile target",
	IOLoadFileError:             "I/O load file error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("X%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
