package hobbes

import (
	"fmt"

	"github.com/dminor/hobbes/pkg/hm"
)

// SourcePos is a position in source text, 1-based.
type SourcePos struct {
	Line int
	Col  int
}

func (p SourcePos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SourceError attaches a source position to an inner error. Unwrap keeps the
// inner error reachable for errors.As, so callers can still match the
// specific type or runtime error variant.
type SourceError struct {
	Pos   SourcePos
	Inner error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Inner)
}

func (e *SourceError) Unwrap() error {
	return e.Inner
}

// errAt wraps err with the position of the node that produced it, unless it
// already carries one from a more specific node.
func errAt(pos SourcePos, err error) error {
	if _, ok := err.(*SourceError); ok {
		return err
	}
	return &SourceError{Pos: pos, Inner: err}
}

// UnboundVariableError reports a reference to a name with no binding in
// scope. It can only surface during inference; the evaluator never sees an
// unbound name in a checked program.
type UnboundVariableError struct {
	Name string
}

func (e UnboundVariableError) Error() string {
	return fmt.Sprintf("Type error: unbound variable: %s.", e.Name)
}

// BranchMismatchError reports if/elsif/else branches whose result types
// cannot be unified.
type BranchMismatchError struct {
	Expected hm.Type
	Actual   hm.Type
}

func (e BranchMismatchError) Error() string {
	return fmt.Sprintf("Type error: if branches have mismatched types: %s and %s.", e.Expected, e.Actual)
}

// NotAFunctionError reports a call whose callee resolved to something other
// than a function type.
type NotAFunctionError struct {
	Type hm.Type
}

func (e NotAFunctionError) Error() string {
	return fmt.Sprintf("Type error: called value is not a function: %s.", e.Type)
}

// UnresolvedTypeError reports a checked program whose final type still
// contains unification variables, e.g. a function parameter never used
// concretely. The language has no generalization, so such a program is
// rejected rather than given a polymorphic-looking type.
type UnresolvedTypeError struct {
	Type hm.Type
}

func (e UnresolvedTypeError) Error() string {
	return fmt.Sprintf("Type error: could not fully resolve type: %s.", e.Type)
}

// DivisionByZeroError is the runtime fault the type checker cannot rule out.
type DivisionByZeroError struct{}

func (e DivisionByZeroError) Error() string {
	return "Division by zero."
}
