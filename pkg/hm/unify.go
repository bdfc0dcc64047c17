package hm

import "fmt"

// MismatchError reports two concrete types that cannot be made equal.
type MismatchError struct {
	Expected Type
	Actual   Type
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("Type error: expected %s, found %s.", e.Expected, e.Actual)
}

// ArityMismatchError reports two tuple types of different lengths.
type ArityMismatchError struct {
	Expected int
	Actual   int
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("Type error: tuple arity mismatch: expected %d elements, found %d.", e.Expected, e.Actual)
}

// InfiniteTypeError reports an attempt to bind a variable to a type that
// contains it. The language has no recursive types, so this can only arise
// from a checker bug or a deliberately self-applied term.
type InfiniteTypeError struct {
	Var  TypeVariable
	Type Type
}

func (e InfiniteTypeError) Error() string {
	return fmt.Sprintf("Type error: infinite type: %s occurs in %s.", e.Var, e.Type)
}

// Unify makes t1 and t2 structurally equal by extending subs, or reports why
// they cannot be. Both types are resolved through subs before comparison so
// stale variables never cause spurious matches. Errors treat t2 as the
// expected side: callers pass the type they found first and the type the
// context demands second.
func Unify(t1, t2 Type, subs Subs) error {
	a := subs.Apply(t1)
	b := subs.Apply(t2)

	if tv, ok := a.(TypeVariable); ok {
		return subs.Bind(tv, b)
	}
	if tv, ok := b.(TypeVariable); ok {
		return subs.Bind(tv, a)
	}

	switch at := a.(type) {
	case ConstType:
		if bt, ok := b.(ConstType); ok && at == bt {
			return nil
		}
	case *FunctionType:
		if bt, ok := b.(*FunctionType); ok {
			if err := Unify(at.arg, bt.arg, subs); err != nil {
				return err
			}
			return Unify(at.ret, bt.ret, subs)
		}
	case TupleType:
		if bt, ok := b.(TupleType); ok {
			if len(at.Elems) != len(bt.Elems) {
				return ArityMismatchError{Expected: len(bt.Elems), Actual: len(at.Elems)}
			}
			for i := range at.Elems {
				if err := Unify(at.Elems[i], bt.Elems[i], subs); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return MismatchError{Expected: b, Actual: a}
}
