package hobbes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dminor/hobbes/pkg/hm"
)

// Node is implemented by every AST node. Infer and Eval are the two tree
// walks over the same shape: Infer threads the global substitution through
// st and either types the node or fails with one of the TypeError variants;
// Eval assumes a tree Infer has already accepted and produces a value or a
// runtime fault.
type Node interface {
	Infer(env *TypeEnv, st *InferState) (hm.Type, error)
	Eval(env *Env) (Value, error)
	GetSourcePos() SourcePos

	// SetInferredType stores the inferred type for this node
	SetInferredType(hm.Type)

	// GetInferredType retrieves the inferred type for this node
	GetInferredType() hm.Type
}

// InferredTypeHolder is embedded in AST nodes to store inferred types.
type InferredTypeHolder struct {
	inferredType hm.Type
}

func (h *InferredTypeHolder) SetInferredType(t hm.Type) {
	h.inferredType = t
}

func (h *InferredTypeHolder) GetInferredType() hm.Type {
	return h.inferredType
}

// Number is an integer literal.
type Number struct {
	InferredTypeHolder
	Value int64
	Pos   SourcePos
}

var _ Node = (*Number)(nil)

func (n *Number) GetSourcePos() SourcePos { return n.Pos }

func (n *Number) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	n.SetInferredType(hm.NumType)
	return hm.NumType, nil
}

func (n *Number) Eval(env *Env) (Value, error) {
	return NumValue{Val: n.Value}, nil
}

func (n *Number) String() string {
	return strconv.FormatInt(n.Value, 10)
}

// Boolean is a true/false literal.
type Boolean struct {
	InferredTypeHolder
	Value bool
	Pos   SourcePos
}

var _ Node = (*Boolean)(nil)

func (b *Boolean) GetSourcePos() SourcePos { return b.Pos }

func (b *Boolean) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	b.SetInferredType(hm.BoolType)
	return hm.BoolType, nil
}

func (b *Boolean) Eval(env *Env) (Value, error) {
	return BoolValue{Val: b.Value}, nil
}

func (b *Boolean) String() string {
	return strconv.FormatBool(b.Value)
}

// Symbol is a reference to a bound name.
type Symbol struct {
	InferredTypeHolder
	Name string
	Pos  SourcePos
}

var _ Node = (*Symbol)(nil)

func (s *Symbol) GetSourcePos() SourcePos { return s.Pos }

func (s *Symbol) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	t, found := env.Lookup(s.Name)
	if !found {
		return nil, errAt(s.Pos, UnboundVariableError{Name: s.Name})
	}
	t = st.Resolve(t)
	s.SetInferredType(t)
	return t, nil
}

func (s *Symbol) Eval(env *Env) (Value, error) {
	val, found := env.Lookup(s.Name)
	if !found {
		// Unreachable in a checked program; inference rejects unbound
		// names. Not a type error, so it does not borrow that message.
		return nil, errAt(s.Pos, fmt.Errorf("undefined name at runtime: %s", s.Name))
	}
	return val, nil
}

func (s *Symbol) String() string {
	return s.Name
}

// Tuple is an ordered sequence of expressions, possibly empty.
type Tuple struct {
	InferredTypeHolder
	Elems []Node
	Pos   SourcePos
}

var _ Node = (*Tuple)(nil)

func (t *Tuple) GetSourcePos() SourcePos { return t.Pos }

func (t *Tuple) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	elems := make([]hm.Type, len(t.Elems))
	for i, e := range t.Elems {
		et, err := e.Infer(env, st)
		if err != nil {
			return nil, err
		}
		elems[i] = et
	}
	// Resolve after the whole walk: a later element may have constrained a
	// variable introduced by an earlier one.
	for i, et := range elems {
		elems[i] = st.Resolve(et)
	}
	typ := hm.NewTupleType(elems...)
	t.SetInferredType(typ)
	return typ, nil
}

func (t *Tuple) Eval(env *Env) (Value, error) {
	elems := make([]Value, len(t.Elems))
	for i, e := range t.Elems {
		val, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		elems[i] = val
	}
	return TupleValue{Elems: elems}, nil
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = nodeToString(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
