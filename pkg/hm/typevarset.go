package hm

// TypeVarSet represents a set of type variables.
type TypeVarSet map[TypeVariable]bool

// NewTypeVarSet creates a new TypeVarSet.
func NewTypeVarSet(tvs ...TypeVariable) TypeVarSet {
	set := make(TypeVarSet)
	for _, tv := range tvs {
		set[tv] = true
	}
	return set
}

// Union returns the union of two TypeVarSets.
func (tvs TypeVarSet) Union(other TypeVarSet) TypeVarSet {
	if len(other) == 0 {
		return tvs
	}
	result := make(TypeVarSet)
	for tv := range tvs {
		result[tv] = true
	}
	for tv := range other {
		result[tv] = true
	}
	return result
}

// Contains checks if a type variable is in the set.
func (tvs TypeVarSet) Contains(tv TypeVariable) bool {
	return tvs[tv]
}
