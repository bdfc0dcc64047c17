package hobbes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dminor/hobbes/pkg/hm"
)

// Value is the result of evaluating a type-checked expression.
type Value interface {
	// Type reports the value's type, when known. Closures report the type
	// inference assigned to their declaration.
	Type() hm.Type
	fmt.Stringer
}

// NumValue is an integer.
type NumValue struct {
	Val int64
}

func (v NumValue) Type() hm.Type { return hm.NumType }

func (v NumValue) String() string {
	return strconv.FormatInt(v.Val, 10)
}

// BoolValue is a boolean.
type BoolValue struct {
	Val bool
}

func (v BoolValue) Type() hm.Type { return hm.BoolType }

func (v BoolValue) String() string {
	return strconv.FormatBool(v.Val)
}

// TupleValue is an ordered sequence of values.
type TupleValue struct {
	Elems []Value
}

func (v TupleValue) Type() hm.Type {
	elems := make([]hm.Type, len(v.Elems))
	for i, e := range v.Elems {
		elems[i] = e.Type()
	}
	return hm.NewTupleType(elems...)
}

func (v TupleValue) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ClosureValue pairs a function literal with the environment chain in
// effect at its creation. Free variables in the body resolve through that
// chain, not the caller's.
type ClosureValue struct {
	Decl *FunDecl
	Env  *Env
}

func (c *ClosureValue) Type() hm.Type {
	return c.Decl.GetInferredType()
}

func (c *ClosureValue) String() string {
	if t := c.Type(); t != nil {
		return fmt.Sprintf("fn : %s", t)
	}
	return "fn"
}

// Call applies the closure to one argument: a frame binding the parameter
// pattern (and, for named functions, the closure itself under its self
// name) is pushed onto the captured chain, and the body evaluates there.
// Binding self at call time rather than at creation time is what keeps the
// closure and its environment from forming a reference cycle.
func (c *ClosureValue) Call(arg Value) (Value, error) {
	fnEnv := c.Env.Fork()

	bindings := make(map[string]Value, len(c.Decl.Param.Names)+1)
	if c.Decl.Param.Tuple {
		tuple, ok := arg.(TupleValue)
		if !ok || len(tuple.Elems) != len(c.Decl.Param.Names) {
			// Unreachable in a checked program; inference unified the
			// argument with the tuple pattern.
			return nil, fmt.Errorf("cannot destructure %s into %s", arg, c.Decl.Param)
		}
		for i, name := range c.Decl.Param.Names {
			bindings[name] = tuple.Elems[i]
		}
	} else {
		bindings[c.Decl.Param.Names[0]] = arg
	}
	if c.Decl.SelfName != "" {
		bindings[c.Decl.SelfName] = c
	}
	fnEnv.BindAll(bindings)

	return c.Decl.Body.Eval(fnEnv)
}

// valuesEqual compares two values structurally. Closures compare by
// identity: two closures are equal only if they are the same closure.
func valuesEqual(left, right Value) bool {
	switch l := left.(type) {
	case NumValue:
		if r, ok := right.(NumValue); ok {
			return l.Val == r.Val
		}
	case BoolValue:
		if r, ok := right.(BoolValue); ok {
			return l.Val == r.Val
		}
	case TupleValue:
		if r, ok := right.(TupleValue); ok {
			if len(l.Elems) != len(r.Elems) {
				return false
			}
			for i := range l.Elems {
				if !valuesEqual(l.Elems[i], r.Elems[i]) {
					return false
				}
			}
			return true
		}
	case *ClosureValue:
		if r, ok := right.(*ClosureValue); ok {
			return l == r
		}
	}
	return false
}

// Eval evaluates a program Infer has already accepted. The only faults it
// can report are the dynamic ones the checker cannot exclude, division and
// modulo by zero.
func Eval(node Node, env *Env) (Value, error) {
	if node == nil {
		return nil, errors.New("cannot evaluate a nil expression")
	}
	return node.Eval(env)
}
