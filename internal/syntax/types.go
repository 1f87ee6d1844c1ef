package syntax

// PredefinedType is a keyword type: scalar, vector, matrix, object, void,
// string, or the bare "vector"/"matrix" keywords. Object types may carry a
// template argument (Texture2D<float4>).
type PredefinedType struct {
	Base
	Name     string
	Argument Type
}

// GenericVectorType is vector<T, N>.
type GenericVectorType struct {
	Base
	Element *PredefinedType
	Size    int
}

// GenericMatrixType is matrix<T, R, C>.
type GenericMatrixType struct {
	Base
	Element *PredefinedType
	Rows    int
	Cols    int
}

func (*PredefinedType) Kind() Kind    { return KindPredefinedType }
func (*GenericVectorType) Kind() Kind { return KindGenericVectorType }
func (*GenericMatrixType) Kind() Kind { return KindGenericMatrixType }

func (*PredefinedType) expressionNode()    {}
func (*GenericVectorType) expressionNode() {}
func (*GenericMatrixType) expressionNode() {}

func (*PredefinedType) typeNode()    {}
func (*GenericVectorType) typeNode() {}
func (*GenericMatrixType) typeNode() {}

func (n *PredefinedType) Children() []Node    { return appendNonNil(nil, n.Argument) }
func (n *GenericVectorType) Children() []Node { return appendNonNil(nil, n.Element) }
func (n *GenericMatrixType) Children() []Node { return appendNonNil(nil, n.Element) }
