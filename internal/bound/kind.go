package bound

// Kind is the closed discriminant of bound nodes.
type Kind uint8

const (
	KindInvalid Kind = iota

	// declarations
	KindCompilationUnit
	KindFunctionDeclaration
	KindFunctionDefinition
	KindParameter
	KindStructType
	KindClassType
	KindNamespace
	KindConstantBuffer
	KindTechnique
	KindPass
	KindStateAssignment
	KindSemantic

	// statements
	KindBlock
	KindBreak
	KindContinue
	KindDiscard
	KindDo
	KindExpressionStatement
	KindFor
	KindIf
	KindReturn
	KindSwitch
	KindSwitchSection
	KindSwitchLabel
	KindWhile
	KindNoOp
	KindMultipleVariableDeclarations
	KindVariableDeclaration

	// expressions
	KindLiteral
	KindVariableExpression
	KindName
	KindFunctionInvocation
	KindMethodInvocation
	KindNumericConstructorInvocation
	KindFieldExpression
	KindSwizzleExpression
	KindElementAccess
	KindBinary
	KindUnary
	KindAssignment
	KindConditional
	KindCompound
	KindParenthesized
	KindCast
	KindInitializerList
	KindCompile
	KindIntrinsicScalarType
	KindIntrinsicVectorType
	KindIntrinsicMatrixType
	KindIntrinsicObjectType
	KindIntrinsicGenericVectorType
	KindIntrinsicGenericMatrixType
	KindIntrinsicKeywordType
	KindStructTypeReference
	KindError
)

var kindNames = [...]string{
	KindInvalid:                      "Invalid",
	KindCompilationUnit:              "CompilationUnit",
	KindFunctionDeclaration:          "FunctionDeclaration",
	KindFunctionDefinition:           "FunctionDefinition",
	KindParameter:                    "Parameter",
	KindStructType:                   "StructType",
	KindClassType:                    "ClassType",
	KindNamespace:                    "Namespace",
	KindConstantBuffer:               "ConstantBuffer",
	KindTechnique:                    "Technique",
	KindPass:                         "Pass",
	KindStateAssignment:              "StateAssignment",
	KindSemantic:                     "Semantic",
	KindBlock:                        "Block",
	KindBreak:                        "Break",
	KindContinue:                     "Continue",
	KindDiscard:                      "Discard",
	KindDo:                           "Do",
	KindExpressionStatement:          "ExpressionStatement",
	KindFor:                          "For",
	KindIf:                           "If",
	KindReturn:                       "Return",
	KindSwitch:                       "Switch",
	KindSwitchSection:                "SwitchSection",
	KindSwitchLabel:                  "SwitchLabel",
	KindWhile:                        "While",
	KindNoOp:                         "NoOp",
	KindMultipleVariableDeclarations: "MultipleVariableDeclarations",
	KindVariableDeclaration:          "VariableDeclaration",
	KindLiteral:                      "Literal",
	KindVariableExpression:           "VariableExpression",
	KindName:                         "Name",
	KindFunctionInvocation:           "FunctionInvocation",
	KindMethodInvocation:             "MethodInvocation",
	KindNumericConstructorInvocation: "NumericConstructorInvocation",
	KindFieldExpression:              "FieldExpression",
	KindSwizzleExpression:            "SwizzleExpression",
	KindElementAccess:                "ElementAccess",
	KindBinary:                       "Binary",
	KindUnary:                        "Unary",
	KindAssignment:                   "Assignment",
	KindConditional:                  "Conditional",
	KindCompound:                     "Compound",
	KindParenthesized:                "Parenthesized",
	KindCast:                         "Cast",
	KindInitializerList:              "InitializerList",
	KindCompile:                      "Compile",
	KindIntrinsicScalarType:          "IntrinsicScalarType",
	KindIntrinsicVectorType:          "IntrinsicVectorType",
	KindIntrinsicMatrixType:          "IntrinsicMatrixType",
	KindIntrinsicObjectType:          "IntrinsicObjectType",
	KindIntrinsicGenericVectorType:   "IntrinsicGenericVectorType",
	KindIntrinsicGenericMatrixType:   "IntrinsicGenericMatrixType",
	KindIntrinsicKeywordType:         "IntrinsicKeywordType",
	KindStructTypeReference:          "StructTypeReference",
	KindError:                        "Error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
