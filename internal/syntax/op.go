package syntax

// Operator is a unary, binary or compound-assignment operator.
type Operator uint8

const (
	OpInvalid Operator = iota
	OpAssign
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpShr
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpEq
	OpNotEq
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLogicalAnd
	OpLogicalOr
	OpNot
	OpBitNot
	OpInc
	OpDec
	OpPlus
	OpNeg
)

var opText = [...]string{
	OpInvalid:    "?",
	OpAssign:     "=",
	OpAdd:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpRem:        "%",
	OpShl:        "<<",
	OpShr:        ">>",
	OpLess:       "<",
	OpLessEq:     "<=",
	OpGreater:    ">",
	OpGreaterEq:  ">=",
	OpEq:         "==",
	OpNotEq:      "!=",
	OpBitAnd:     "&",
	OpBitOr:      "|",
	OpBitXor:     "^",
	OpLogicalAnd: "&&",
	OpLogicalOr:  "||",
	OpNot:        "!",
	OpBitNot:     "~",
	OpInc:        "++",
	OpDec:        "--",
	OpPlus:       "+",
	OpNeg:        "-",
}

func (op Operator) String() string {
	if int(op) < len(opText) {
		return opText[op]
	}
	return "?"
}

// BinaryOperator maps a binary operator token.
func BinaryOperator(tok string) Operator {
	switch tok {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*":
		return OpMul
	case "/":
		return OpDiv
	case "%":
		return OpRem
	case "<<":
		return OpShl
	case ">>":
		return OpShr
	case "<":
		return OpLess
	case "<=":
		return OpLessEq
	case ">":
		return OpGreater
	case ">=":
		return OpGreaterEq
	case "==":
		return OpEq
	case "!=":
		return OpNotEq
	case "&":
		return OpBitAnd
	case "|":
		return OpBitOr
	case "^":
		return OpBitXor
	case "&&":
		return OpLogicalAnd
	case "||":
		return OpLogicalOr
	}
	return OpInvalid
}

// UnaryOperator maps a prefix or postfix operator token.
func UnaryOperator(tok string) Operator {
	switch tok {
	case "!":
		return OpNot
	case "~":
		return OpBitNot
	case "++":
		return OpInc
	case "--":
		return OpDec
	case "+":
		return OpPlus
	case "-":
		return OpNeg
	}
	return OpInvalid
}

// AssignmentOperator maps "=", "+=", ... to the operator applied before the
// store; plain assignment yields OpAssign.
func AssignmentOperator(tok string) Operator {
	if tok == "=" {
		return OpAssign
	}
	if len(tok) < 2 || tok[len(tok)-1] != '=' {
		return OpInvalid
	}
	return BinaryOperator(tok[:len(tok)-1])
}

// IsComparison reports whether op yields a bool-shaped result.
func (op Operator) IsComparison() bool {
	switch op {
	case OpLess, OpLessEq, OpGreater, OpGreaterEq, OpEq, OpNotEq:
		return true
	}
	return false
}

func (op Operator) IsLogical() bool {
	return op == OpLogicalAnd || op == OpLogicalOr
}

// IsBitwise reports whether op requires integral operands.
func (op Operator) IsBitwise() bool {
	switch op {
	case OpBitAnd, OpBitOr, OpBitXor, OpShl, OpShr, OpBitNot:
		return true
	}
	return false
}
