package hm

// Subs is the substitution: a mapping from type variables to types, built
// incrementally during inference. One Subs is threaded through an entire
// inference run; a fresh program gets a fresh Subs.
type Subs map[TypeVariable]Type

// NewSubs creates a new substitution.
func NewSubs() Subs {
	return make(Subs)
}

// Apply resolves a type through the substitution, chasing variable chains
// to a fixed point.
func (s Subs) Apply(t Type) Type {
	return t.Apply(s).(Type)
}

// Bind records tv -> t. Binding a variable to itself is a no-op. Binding a
// variable to a type containing that variable would make resolution loop
// forever, so it is rejected with InfiniteTypeError.
func (s Subs) Bind(tv TypeVariable, t Type) error {
	if ot, ok := t.(TypeVariable); ok && tv == ot {
		return nil
	}
	if t.FreeTypeVar().Contains(tv) {
		return InfiniteTypeError{Var: tv, Type: t}
	}
	s[tv] = t
	return nil
}

// Get gets the binding for a type variable, if any.
func (s Subs) Get(tv TypeVariable) (Type, bool) {
	t, exists := s[tv]
	return t, exists
}

// Clone creates a copy of the substitution.
func (s Subs) Clone() Subs {
	result := make(Subs, len(s))
	for tv, t := range s {
		result[tv] = t
	}
	return result
}
