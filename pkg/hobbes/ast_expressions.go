package hobbes

import (
	"fmt"
	"strings"

	"github.com/dminor/hobbes/pkg/hm"
)

// Conditional is an if/elsif/else chain. The else arm is mandatory: every
// conditional is an expression and must produce a value on all paths.
type Conditional struct {
	InferredTypeHolder
	Cond    Node
	Then    Node
	ElseIfs []ElseIf
	Else    Node
	Pos     SourcePos
}

// ElseIf is one elsif arm of a Conditional.
type ElseIf struct {
	Cond Node
	Body Node
}

var _ Node = (*Conditional)(nil)

func (c *Conditional) GetSourcePos() SourcePos { return c.Pos }

func (c *Conditional) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	condType, err := c.Cond.Infer(env, st)
	if err != nil {
		return nil, err
	}
	if err := st.Unify(condType, hm.BoolType); err != nil {
		return nil, errAt(c.Cond.GetSourcePos(), err)
	}

	// Each arm gets its own scope so a define inside one branch cannot leak
	// into a sibling.
	result, err := c.Then.Infer(env.Fork(), st)
	if err != nil {
		return nil, err
	}

	unifyBranch := func(body Node) error {
		bt, err := body.Infer(env.Fork(), st)
		if err != nil {
			return err
		}
		if err := st.Unify(bt, result); err != nil {
			return errAt(body.GetSourcePos(), BranchMismatchError{
				Expected: st.Resolve(result),
				Actual:   st.Resolve(bt),
			})
		}
		return nil
	}

	for _, ei := range c.ElseIfs {
		ct, err := ei.Cond.Infer(env, st)
		if err != nil {
			return nil, err
		}
		if err := st.Unify(ct, hm.BoolType); err != nil {
			return nil, errAt(ei.Cond.GetSourcePos(), err)
		}
		if err := unifyBranch(ei.Body); err != nil {
			return nil, err
		}
	}

	if err := unifyBranch(c.Else); err != nil {
		return nil, err
	}

	result = st.Resolve(result)
	c.SetInferredType(result)
	return result, nil
}

func (c *Conditional) Eval(env *Env) (Value, error) {
	condVal, err := c.Cond.Eval(env)
	if err != nil {
		return nil, err
	}
	b, ok := condVal.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("condition must evaluate to Bool, got %T", condVal)
	}
	if b.Val {
		return c.Then.Eval(env.Fork())
	}

	for _, ei := range c.ElseIfs {
		condVal, err := ei.Cond.Eval(env)
		if err != nil {
			return nil, err
		}
		b, ok := condVal.(BoolValue)
		if !ok {
			return nil, fmt.Errorf("condition must evaluate to Bool, got %T", condVal)
		}
		if b.Val {
			return ei.Body.Eval(env.Fork())
		}
	}

	return c.Else.Eval(env.Fork())
}

func (c *Conditional) String() string {
	return fmt.Sprintf("if %s then ... end", nodeToString(c.Cond))
}

// Define introduces a binding visible from this point forward. A second
// define of the same name shadows the first without destroying it. The
// define itself evaluates to the bound value.
type Define struct {
	InferredTypeHolder
	Name  string
	Value Node
	Pos   SourcePos
}

var _ Node = (*Define)(nil)

func (d *Define) GetSourcePos() SourcePos { return d.Pos }

func (d *Define) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	t, err := d.Value.Infer(env, st)
	if err != nil {
		return nil, err
	}
	t = st.Resolve(t)
	env.Bind(d.Name, t)
	d.SetInferredType(t)
	return t, nil
}

func (d *Define) Eval(env *Env) (Value, error) {
	val, err := d.Value.Eval(env)
	if err != nil {
		return nil, err
	}
	env.Bind(d.Name, val)
	return val, nil
}

func (d *Define) String() string {
	return fmt.Sprintf("def %s := %s", d.Name, nodeToString(d.Value))
}

// Seq is the sequencing of two ;-separated expressions. The first value is
// discarded but its bindings persist for the rest.
type Seq struct {
	InferredTypeHolder
	First Node
	Rest  Node
}

var _ Node = (*Seq)(nil)

func (s *Seq) GetSourcePos() SourcePos { return s.First.GetSourcePos() }

func (s *Seq) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	if _, err := s.First.Infer(env, st); err != nil {
		return nil, err
	}
	t, err := s.Rest.Infer(env, st)
	if err != nil {
		return nil, err
	}
	s.SetInferredType(t)
	return t, nil
}

func (s *Seq) Eval(env *Env) (Value, error) {
	if _, err := s.First.Eval(env); err != nil {
		return nil, err
	}
	return s.Rest.Eval(env)
}

func (s *Seq) String() string {
	return fmt.Sprintf("%s; %s", nodeToString(s.First), nodeToString(s.Rest))
}

// ParamPattern is a function's formal parameter: either a single name, or a
// parenthesized tuple of names destructured positionally. The empty pattern
// () takes the unit tuple.
type ParamPattern struct {
	Names []string
	Tuple bool
}

func (p ParamPattern) String() string {
	if p.Tuple {
		return "(" + strings.Join(p.Names, ", ") + ")"
	}
	return p.Names[0]
}

// FunDecl is a function literal. SelfName, when present, names the function
// inside its own body for recursive self-calls.
type FunDecl struct {
	InferredTypeHolder
	SelfName string
	Param    ParamPattern
	Body     Node
	Pos      SourcePos
}

var _ Node = (*FunDecl)(nil)

func (f *FunDecl) GetSourcePos() SourcePos { return f.Pos }

func (f *FunDecl) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	child := env.Fork()

	// One fresh variable per parameter position; a use inside the body
	// settles it through unification.
	var paramType hm.Type
	bindings := make(map[string]hm.Type, len(f.Param.Names)+1)
	if f.Param.Tuple {
		elems := make([]hm.Type, len(f.Param.Names))
		for i, name := range f.Param.Names {
			tv := st.Fresh()
			elems[i] = tv
			bindings[name] = tv
		}
		paramType = hm.NewTupleType(elems...)
	} else {
		tv := st.Fresh()
		bindings[f.Param.Names[0]] = tv
		paramType = tv
	}

	// The self binding is a placeholder eagerly unified against recursive
	// call sites during the body walk, then against the assembled signature.
	// That is all the fixed-point machinery recursion needs here.
	var selfType hm.TypeVariable
	if f.SelfName != "" {
		selfType = st.Fresh()
		bindings[f.SelfName] = selfType
	}
	child.BindAll(bindings)

	bodyType, err := f.Body.Infer(child, st)
	if err != nil {
		return nil, err
	}

	fnType := hm.NewFnType(st.Resolve(paramType), st.Resolve(bodyType))
	if f.SelfName != "" {
		if err := st.Unify(selfType, fnType); err != nil {
			return nil, errAt(f.Pos, err)
		}
	}

	result := st.Resolve(fnType)
	f.SetInferredType(result)
	return result, nil
}

func (f *FunDecl) Eval(env *Env) (Value, error) {
	// Capture the current chain by reference. The self binding is not
	// inserted here: the closure value does not exist yet, and baking in a
	// back-pointer would create a cycle. Call binds it instead.
	return &ClosureValue{Decl: f, Env: env.Fork()}, nil
}

func (f *FunDecl) String() string {
	if f.SelfName != "" {
		return fmt.Sprintf("fn %s %s -> ... end", f.SelfName, f.Param)
	}
	return fmt.Sprintf("fn %s -> ... end", f.Param)
}

// FunCall applies a callee to a single argument. Multi-argument calls are
// tuple-argument calls.
type FunCall struct {
	InferredTypeHolder
	Fun Node
	Arg Node
	Pos SourcePos
}

var _ Node = (*FunCall)(nil)

func (f *FunCall) GetSourcePos() SourcePos { return f.Pos }

func (f *FunCall) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	calleeType, err := f.Fun.Infer(env, st)
	if err != nil {
		return nil, err
	}

	argType, err := f.Arg.Infer(env, st)
	if err != nil {
		return nil, err
	}

	switch ct := st.Resolve(calleeType).(type) {
	case *hm.FunctionType:
		if err := st.Unify(argType, ct.Arg()); err != nil {
			return nil, errAt(f.Arg.GetSourcePos(), err)
		}
		result := st.Resolve(ct.Ret())
		f.SetInferredType(result)
		return result, nil
	case hm.TypeVariable:
		// The callee's type is still open, e.g. a recursive self-reference
		// or a parameter used as a function. Force it into function shape.
		ret := st.Fresh()
		if err := st.Unify(ct, hm.NewFnType(st.Resolve(argType), ret)); err != nil {
			return nil, errAt(f.Pos, err)
		}
		result := st.Resolve(ret)
		f.SetInferredType(result)
		return result, nil
	default:
		return nil, errAt(f.Fun.GetSourcePos(), NotAFunctionError{Type: ct})
	}
}

func (f *FunCall) Eval(env *Env) (Value, error) {
	calleeVal, err := f.Fun.Eval(env)
	if err != nil {
		return nil, err
	}
	closure, ok := calleeVal.(*ClosureValue)
	if !ok {
		return nil, fmt.Errorf("called value is not a function: %T", calleeVal)
	}

	argVal, err := f.Arg.Eval(env)
	if err != nil {
		return nil, err
	}

	return closure.Call(argVal)
}

func (f *FunCall) String() string {
	return fmt.Sprintf("%s(%s)", nodeToString(f.Fun), nodeToString(f.Arg))
}

// nodeToString converts a Node to a readable string for diagnostics.
func nodeToString(node Node) string {
	if s, ok := node.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", node)
}
