package hobbes

import (
	"github.com/pkg/errors"

	"github.com/dminor/hobbes/pkg/hm"
)

// InferState carries the mutable pieces of one inference run: the
// fresh-variable counter and the substitution threaded through every rule.
// There is exactly one InferState per top-level program; nothing is shared
// between runs.
type InferState struct {
	subs     hm.Subs
	varCount int
}

var _ hm.Fresher = (*InferState)(nil)

func NewInferState() *InferState {
	return &InferState{subs: hm.NewSubs()}
}

// Fresh allocates the next unification variable.
func (st *InferState) Fresh() hm.TypeVariable {
	tv := hm.TypeVariable(st.varCount)
	st.varCount++
	return tv
}

// Unify extends the substitution so a and b become equal, or fails with the
// unification error describing why not.
func (st *InferState) Unify(a, b hm.Type) error {
	return hm.Unify(a, b, st.subs)
}

// Resolve applies the accumulated substitution to t, chasing variable
// chains to a fixed point. Every rule resolves the types it reads before
// comparing them; a stale variable would make unification claim equality
// or inequality it has no right to.
func (st *InferState) Resolve(t hm.Type) hm.Type {
	return st.subs.Apply(t)
}

// Infer type-checks a single top-level program. The environment accumulates
// bindings from defines, so a REPL can pass the same env for every line,
// but the substitution arena is fresh per call. A failed run rolls the
// environment back to where it started, so a rejected line binds nothing.
//
// The returned type contains no unification variables: a program whose
// final type still has one (a parameter never used concretely) is rejected
// with UnresolvedType, since the language does not generalize.
func Infer(node Node, env *TypeEnv) (hm.Type, error) {
	if node == nil {
		return nil, errors.New("cannot infer a nil expression")
	}

	st := NewInferState()
	mark := env.top
	t, err := node.Infer(env, st)
	if err != nil {
		env.top = mark
		return nil, err
	}

	// Re-resolve bindings introduced by top-level defines. The environment
	// outlives this run's substitution (a REPL shares it across lines), so
	// a stored type must not reference this arena's variables. A binding
	// the program never pinned down is rejected outright: the language has
	// no generalization to give it a meaning.
	for f := env.top; f != mark; f = f.parent {
		for name, bound := range f.bindings {
			resolved := st.Resolve(bound)
			if len(resolved.FreeTypeVar()) > 0 {
				env.top = mark
				return nil, errAt(node.GetSourcePos(), UnresolvedTypeError{Type: resolved})
			}
			f.bindings[name] = resolved
		}
	}

	t = st.Resolve(t)
	if len(t.FreeTypeVar()) > 0 {
		env.top = mark
		return nil, errAt(node.GetSourcePos(), UnresolvedTypeError{Type: t})
	}
	return t, nil
}
