package hobbes

import (
	"github.com/dminor/hobbes/pkg/hm"
)

// frame is one link in a scope chain. Frames are never mutated once pushed:
// a new binding always pushes a new frame, so a closure holding an older
// chain is unaffected by later definitions.
type frame[T any] struct {
	bindings map[string]T
	parent   *frame[T]
}

// Scope is a handle on a chain of immutable frames, looked up
// innermost-first. The inference engine and the evaluator instantiate the
// same structure with different payloads: types during checking, values
// during evaluation.
type Scope[T any] struct {
	top *frame[T]
}

func NewScope[T any]() *Scope[T] {
	return &Scope[T]{}
}

// Bind pushes a new frame holding a single binding. An existing binding for
// the same name is shadowed from this point forward, not replaced.
func (s *Scope[T]) Bind(name string, v T) {
	s.top = &frame[T]{
		bindings: map[string]T{name: v},
		parent:   s.top,
	}
}

// BindAll pushes a single frame holding every given binding, used for
// function entry where a parameter pattern introduces several names at once.
func (s *Scope[T]) BindAll(bindings map[string]T) {
	s.top = &frame[T]{
		bindings: bindings,
		parent:   s.top,
	}
}

// Lookup finds a binding, walking outward from the innermost frame.
func (s *Scope[T]) Lookup(name string) (T, bool) {
	for f := s.top; f != nil; f = f.parent {
		if v, ok := f.bindings[name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Fork returns a new handle on the same frame chain. Bindings made through
// the fork shadow within the fork only; the receiver never sees them. This
// is how closures capture their defining environment and how branches and
// function bodies get their own scope without copying frames.
func (s *Scope[T]) Fork() *Scope[T] {
	return &Scope[T]{top: s.top}
}

// TypeEnv binds names to types during inference.
type TypeEnv = Scope[hm.Type]

// Env binds names to values during evaluation.
type Env = Scope[Value]

// NewTypeEnv creates an empty type environment.
func NewTypeEnv() *TypeEnv {
	return NewScope[hm.Type]()
}

// NewEnv creates an empty value environment.
func NewEnv() *Env {
	return NewScope[Value]()
}
