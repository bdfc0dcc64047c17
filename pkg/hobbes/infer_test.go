package hobbes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dminor/hobbes/pkg/hm"
)

func inferSource(t *testing.T, source string) (hm.Type, error) {
	t.Helper()
	node, err := Parse(source)
	require.NoError(t, err)
	return Infer(node, NewTypeEnv())
}

func TestInferLiterals(t *testing.T) {
	cases := []struct {
		source string
		typ    string
	}{
		{"42", "Num"},
		{"true", "Bool"},
		{"false", "Bool"},
		{"()", "()"},
		{"(1, true)", "(Num, Bool)"},
		{"((1, 2), false)", "((Num, Num), Bool)"},
	}

	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			typ, err := inferSource(t, tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, typ.String())
		})
	}
}

func TestInferOperators(t *testing.T) {
	cases := []struct {
		source string
		typ    string
	}{
		{"1 + 2 * 3", "Num"},
		{"10 / 2 % 3", "Num"},
		{"-5", "Num"},
		{"1 < 2", "Bool"},
		{"1 >= 2", "Bool"},
		{"true && false || true", "Bool"},
		{"!true", "Bool"},
		{"1 == 2", "Bool"},
		{"1 <> 2", "Bool"},
		{"true == false", "Bool"},
		{"(1, 2) == (3, 4)", "Bool"},
	}

	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			typ, err := inferSource(t, tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, typ.String())
		})
	}
}

func TestInferOperatorMismatch(t *testing.T) {
	cases := []string{
		"1 + true",
		"true < false",
		"1 && 2",
		"!1",
		"1 == true",
		"(1, 2) <> (1, true)",
		"(1, 2) == 1",
		"if 1 then 2 else 3 end",
	}

	for _, source := range cases {
		t.Run(source, func(t *testing.T) {
			_, err := inferSource(t, source)
			require.Error(t, err)
			var mismatch hm.MismatchError
			assert.True(t, errors.As(err, &mismatch), "expected mismatch, got %v", err)
		})
	}
}

func TestInferDefine(t *testing.T) {
	typ, err := inferSource(t, "def x := 1; x + 1")
	require.NoError(t, err)
	assert.Equal(t, "Num", typ.String())

	// A define evaluates to its bound value.
	typ, err = inferSource(t, "def x := true")
	require.NoError(t, err)
	assert.Equal(t, "Bool", typ.String())
}

func TestInferShadowing(t *testing.T) {
	// Redefinition shadows at a different type; later uses see the
	// innermost binding.
	typ, err := inferSource(t, "def x := 1; def x := false; x")
	require.NoError(t, err)
	assert.Equal(t, "Bool", typ.String())
}

func TestInferUnboundVariable(t *testing.T) {
	_, err := inferSource(t, "x + 1")
	require.Error(t, err)
	var unbound UnboundVariableError
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, "x", unbound.Name)
}

func TestInferConditional(t *testing.T) {
	typ, err := inferSource(t, "if 1 < 2 then 1 else 2 end")
	require.NoError(t, err)
	assert.Equal(t, "Num", typ.String())

	typ, err = inferSource(t, "if false then 1 elsif true then 2 else 3 end")
	require.NoError(t, err)
	assert.Equal(t, "Num", typ.String())
}

func TestInferBranchMismatch(t *testing.T) {
	_, err := inferSource(t, "if true then 1 else false end")
	require.Error(t, err)
	var branch BranchMismatchError
	require.True(t, errors.As(err, &branch))

	_, err = inferSource(t, "if true then 1 elsif false then true else 2 end")
	require.Error(t, err)
	assert.True(t, errors.As(err, &branch))
}

func TestInferFunctions(t *testing.T) {
	cases := []struct {
		name   string
		source string
		typ    string
	}{
		{"increment", "fn n -> n + 1 end", "Num -> Num"},
		{"predicate", "fn n -> n < 10 end", "Num -> Bool"},
		{"tuple pattern", "fn (a, b) -> a + b end", "(Num, Num) -> Num"},
		{"empty pattern", "fn () -> 42 end", "() -> Num"},
		{"higher order", "fn f -> f(1) + 1 end", "(Num -> Num) -> Num"},
		{"call", "(fn n -> n + 1 end)(41)", "Num"},
		{"curried", "fn a -> fn b -> a + b end end", "Num -> Num -> Num"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			typ, err := inferSource(t, tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, typ.String())
		})
	}
}

func TestInferRecursion(t *testing.T) {
	typ, err := inferSource(t, "fn fact n -> if n == 0 then 1 else n * fact(n - 1) end end")
	require.NoError(t, err)
	assert.Equal(t, "Num -> Num", typ.String())
}

func TestInferNotAFunction(t *testing.T) {
	_, err := inferSource(t, "1(2)")
	require.Error(t, err)
	var notFn NotAFunctionError
	require.True(t, errors.As(err, &notFn))

	_, err = inferSource(t, "def x := true; x(1)")
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFn))
}

func TestInferArityMismatch(t *testing.T) {
	// A parenthesized parameter list is a tuple pattern even with one
	// name, so calling it with two arguments is an arity error.
	_, err := inferSource(t, "(fn (a) -> a end)(1, 2)")
	require.Error(t, err)
	var arity hm.ArityMismatchError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 1, arity.Expected)
	assert.Equal(t, 2, arity.Actual)
}

func TestInferArgumentMismatch(t *testing.T) {
	_, err := inferSource(t, "(fn n -> n + 1 end)(true)")
	require.Error(t, err)
	var mismatch hm.MismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestInferPolymorphicEquality(t *testing.T) {
	// Equality accepts any pair of mutually unifiable operands, so the
	// comparison function checks as long as every application pins the
	// operand type down.
	typ, err := inferSource(t, "def eq := fn (a, b) -> a == b end; eq((1, 1))")
	require.NoError(t, err)
	assert.Equal(t, "Bool", typ.String())

	typ, err = inferSource(t, "def eq := fn (a, b) -> a <> b end; eq((true, false))")
	require.NoError(t, err)
	assert.Equal(t, "Bool", typ.String())

	// ...but both operands still have to agree.
	_, err = inferSource(t, "def eq := fn (a, b) -> a == b end; eq((1, true))")
	require.Error(t, err)
	var mismatch hm.MismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestInferUnresolvedType(t *testing.T) {
	// Without generalization an unapplied equality function has no
	// concrete type to give its parameters.
	cases := []string{
		"fn (a, b) -> a == b end",
		"fn id x -> x end",
		"def p := fn (a, b) -> a == b end; 1",
	}

	for _, source := range cases {
		t.Run(source, func(t *testing.T) {
			_, err := inferSource(t, source)
			require.Error(t, err)
			var unresolved UnresolvedTypeError
			assert.True(t, errors.As(err, &unresolved), "expected unresolved type, got %v", err)
		})
	}
}

func TestInferOccursCheck(t *testing.T) {
	_, err := inferSource(t, "fn f -> f(f) end")
	require.Error(t, err)
	var infinite hm.InfiniteTypeError
	assert.True(t, errors.As(err, &infinite))
}

func TestInferDivisionByZeroTypechecks(t *testing.T) {
	// Division by zero is a runtime fault; the checker accepts it.
	typ, err := inferSource(t, "5 / 0")
	require.NoError(t, err)
	assert.Equal(t, "Num", typ.String())
}

func TestInferAnnotatesNodes(t *testing.T) {
	node, err := Parse("1 + 2")
	require.NoError(t, err)
	_, err = Infer(node, NewTypeEnv())
	require.NoError(t, err)

	add := node.(*Binary)
	require.NotNil(t, add.GetInferredType())
	assert.True(t, add.GetInferredType().Eq(hm.NumType))
	require.NotNil(t, add.Left.(*Number).GetInferredType())
	assert.True(t, add.Left.(*Number).GetInferredType().Eq(hm.NumType))
}

func TestInferReplSharedEnv(t *testing.T) {
	// A REPL passes the same type environment to every line; bindings
	// persist and stay fully resolved across runs.
	tenv := NewTypeEnv()

	node, err := Parse("def inc := fn n -> n + 1 end")
	require.NoError(t, err)
	_, err = Infer(node, tenv)
	require.NoError(t, err)

	node, err = Parse("inc(41)")
	require.NoError(t, err)
	typ, err := Infer(node, tenv)
	require.NoError(t, err)
	assert.Equal(t, "Num", typ.String())
}
