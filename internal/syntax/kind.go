package syntax

// Kind is the closed discriminant of syntax nodes.
type Kind uint8

const (
	KindInvalid Kind = iota

	// declarations
	KindCompilationUnit
	KindFunctionDeclaration
	KindFunctionDefinition
	KindParameter
	KindIdentifierDeclarationName
	KindSemantic
	KindVariableDeclaration
	KindVariableDeclarator
	KindStructType
	KindClassType
	KindNamespace
	KindConstantBuffer
	KindTechnique
	KindPass
	KindStateAssignment

	// statements
	KindBlock
	KindBreak
	KindContinue
	KindDiscard
	KindDo
	KindExpressionStatement
	KindFor
	KindIf
	KindElseClause
	KindReturn
	KindSwitch
	KindSwitchSection
	KindCaseSwitchLabel
	KindDefaultSwitchLabel
	KindWhile
	KindEmptyStatement

	// expressions
	KindIdentifierName
	KindQualifiedName
	KindLiteral
	KindBinary
	KindAssignment
	KindPrefixUnary
	KindPostfixUnary
	KindInvocation
	KindMethodInvocation
	KindNumericConstructor
	KindFieldAccess
	KindElementAccess
	KindCompound
	KindParenthesized
	KindConditional
	KindCast
	KindInitializerList
	KindCompile
	KindMissing

	// types
	KindPredefinedType
	KindGenericVectorType
	KindGenericMatrixType
)

var kindNames = [...]string{
	KindInvalid:                   "Invalid",
	KindCompilationUnit:           "CompilationUnit",
	KindFunctionDeclaration:       "FunctionDeclaration",
	KindFunctionDefinition:        "FunctionDefinition",
	KindParameter:                 "Parameter",
	KindIdentifierDeclarationName: "IdentifierDeclarationName",
	KindSemantic:                  "Semantic",
	KindVariableDeclaration:       "VariableDeclaration",
	KindVariableDeclarator:        "VariableDeclarator",
	KindStructType:                "StructType",
	KindClassType:                 "ClassType",
	KindNamespace:                 "Namespace",
	KindConstantBuffer:            "ConstantBuffer",
	KindTechnique:                 "Technique",
	KindPass:                      "Pass",
	KindStateAssignment:           "StateAssignment",
	KindBlock:                     "Block",
	KindBreak:                     "Break",
	KindContinue:                  "Continue",
	KindDiscard:                   "Discard",
	KindDo:                        "Do",
	KindExpressionStatement:       "ExpressionStatement",
	KindFor:                       "For",
	KindIf:                        "If",
	KindElseClause:                "ElseClause",
	KindReturn:                    "Return",
	KindSwitch:                    "Switch",
	KindSwitchSection:             "SwitchSection",
	KindCaseSwitchLabel:           "CaseSwitchLabel",
	KindDefaultSwitchLabel:        "DefaultSwitchLabel",
	KindWhile:                     "While",
	KindEmptyStatement:            "EmptyStatement",
	KindIdentifierName:            "IdentifierName",
	KindQualifiedName:             "QualifiedName",
	KindLiteral:                   "Literal",
	KindBinary:                    "Binary",
	KindAssignment:                "Assignment",
	KindPrefixUnary:               "PrefixUnary",
	KindPostfixUnary:              "PostfixUnary",
	KindInvocation:                "Invocation",
	KindMethodInvocation:          "MethodInvocation",
	KindNumericConstructor:        "NumericConstructor",
	KindFieldAccess:               "FieldAccess",
	KindElementAccess:             "ElementAccess",
	KindCompound:                  "Compound",
	KindParenthesized:             "Parenthesized",
	KindConditional:               "Conditional",
	KindCast:                      "Cast",
	KindInitializerList:           "InitializerList",
	KindCompile:                   "Compile",
	KindMissing:                   "Missing",
	KindPredefinedType:            "PredefinedType",
	KindGenericVectorType:         "GenericVectorType",
	KindGenericMatrixType:         "GenericMatrixType",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
