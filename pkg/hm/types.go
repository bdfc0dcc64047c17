package hm

import (
	"fmt"
	"strings"
)

// Type represents all possible type constructors: the base types, tuples,
// functions, and unification variables.
type Type interface {
	Substitutable
	Name() string
	Eq(Type) bool
	fmt.Stringer
}

// Substitutable is any type that can have substitutions applied and knows its
// free type variables.
type Substitutable interface {
	Apply(Subs) Substitutable
	FreeTypeVar() TypeVarSet
}

// Fresher allocates unification variables that are unique within a single
// inference run.
type Fresher interface {
	Fresh() TypeVariable
}

// TypeVariable is an unbound placeholder, identified by an integer unique
// within one inference run. It carries no binding itself; resolution goes
// through the substitution.
type TypeVariable int

func (tv TypeVariable) Name() string {
	return tv.String()
}

// Apply chases the variable through the substitution until no further
// binding applies. Termination is guaranteed because Bind refuses to create
// self-referential bindings.
func (tv TypeVariable) Apply(subs Subs) Substitutable {
	if t, exists := subs[tv]; exists {
		return t.Apply(subs)
	}
	return tv
}

func (tv TypeVariable) FreeTypeVar() TypeVarSet {
	return NewTypeVarSet(tv)
}

func (tv TypeVariable) Eq(other Type) bool {
	if ot, ok := other.(TypeVariable); ok {
		return tv == ot
	}
	return false
}

func (tv TypeVariable) String() string {
	if tv >= 0 && tv < 26 {
		return string(rune('a' + tv))
	}
	return fmt.Sprintf("t%d", int(tv))
}

// ConstType is a base type with no structure.
type ConstType string

const (
	NumType  ConstType = "Num"
	BoolType ConstType = "Bool"
)

func (t ConstType) Name() string             { return string(t) }
func (t ConstType) Apply(Subs) Substitutable { return t }
func (t ConstType) FreeTypeVar() TypeVarSet  { return nil }
func (t ConstType) String() string           { return string(t) }

func (t ConstType) Eq(other Type) bool {
	if ot, ok := other.(ConstType); ok {
		return t == ot
	}
	return false
}

// FunctionType represents a function type.
type FunctionType struct {
	arg Type
	ret Type
}

func NewFnType(arg, ret Type) *FunctionType {
	return &FunctionType{arg: arg, ret: ret}
}

func (ft *FunctionType) Name() string {
	return ft.String()
}

func (ft *FunctionType) Apply(subs Subs) Substitutable {
	return &FunctionType{
		arg: ft.arg.Apply(subs).(Type),
		ret: ft.ret.Apply(subs).(Type),
	}
}

func (ft *FunctionType) FreeTypeVar() TypeVarSet {
	return ft.arg.FreeTypeVar().Union(ft.ret.FreeTypeVar())
}

func (ft *FunctionType) Eq(other Type) bool {
	if ot, ok := other.(*FunctionType); ok {
		return ft.arg.Eq(ot.arg) && ft.ret.Eq(ot.ret)
	}
	return false
}

func (ft *FunctionType) String() string {
	if inner, ok := ft.arg.(*FunctionType); ok {
		// Parenthesize a function-typed parameter so the arrow reads
		// right-associatively.
		return fmt.Sprintf("(%s) -> %s", inner, ft.ret)
	}
	return fmt.Sprintf("%s -> %s", ft.arg, ft.ret)
}

// Arg returns the parameter type.
func (ft *FunctionType) Arg() Type {
	return ft.arg
}

// Ret returns the result type.
func (ft *FunctionType) Ret() Type {
	return ft.ret
}

// TupleType represents an ordered, fixed-length tuple of types. The empty
// tuple is the unit type.
type TupleType struct {
	Elems []Type
}

func NewTupleType(elems ...Type) TupleType {
	return TupleType{Elems: elems}
}

func (t TupleType) Name() string {
	return t.String()
}

func (t TupleType) Apply(subs Subs) Substitutable {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Apply(subs).(Type)
	}
	return TupleType{Elems: elems}
}

func (t TupleType) FreeTypeVar() TypeVarSet {
	var ftvs TypeVarSet
	for _, e := range t.Elems {
		ftvs = ftvs.Union(e.FreeTypeVar())
	}
	return ftvs
}

func (t TupleType) Eq(other Type) bool {
	ot, ok := other.(TupleType)
	if !ok || len(t.Elems) != len(ot.Elems) {
		return false
	}
	for i, e := range t.Elems {
		if !e.Eq(ot.Elems[i]) {
			return false
		}
	}
	return true
}

func (t TupleType) String() string {
	names := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		names[i] = e.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}
