package hobbes

import (
	"fmt"

	"github.com/dminor/hobbes/pkg/hm"
)

// Op identifies a unary or binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpEq
	OpNe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpNot
)

var opNames = map[Op]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpLt:  "<",
	OpLe:  "<=",
	OpEq:  "==",
	OpNe:  "<>",
	OpGt:  ">",
	OpGe:  ">=",
	OpAnd: "&&",
	OpOr:  "||",
	OpNot: "!",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// opClass groups binary operators by their typing rule.
type opClass int

const (
	arithmeticOp opClass = iota // Num × Num -> Num
	orderingOp                  // Num × Num -> Bool
	equalityOp                  // a × a -> Bool, the sole polymorphism point
	logicalOp                   // Bool × Bool -> Bool, short-circuiting
)

func (op Op) class() opClass {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return arithmeticOp
	case OpLt, OpLe, OpGt, OpGe:
		return orderingOp
	case OpEq, OpNe:
		return equalityOp
	default:
		return logicalOp
	}
}

// Unary is a prefix operator application. The only unary operator is boolean
// negation; unary minus is desugared by the parser into 0 - x.
type Unary struct {
	InferredTypeHolder
	Op      Op
	Operand Node
	Pos     SourcePos
}

var _ Node = (*Unary)(nil)

func (u *Unary) GetSourcePos() SourcePos { return u.Pos }

func (u *Unary) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	t, err := u.Operand.Infer(env, st)
	if err != nil {
		return nil, err
	}
	if err := st.Unify(t, hm.BoolType); err != nil {
		return nil, errAt(u.Pos, err)
	}
	u.SetInferredType(hm.BoolType)
	return hm.BoolType, nil
}

func (u *Unary) Eval(env *Env) (Value, error) {
	val, err := u.Operand.Eval(env)
	if err != nil {
		return nil, err
	}
	b, ok := val.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("unary %s requires Bool value, got %T", u.Op, val)
	}
	return BoolValue{Val: !b.Val}, nil
}

func (u *Unary) String() string {
	return fmt.Sprintf("%s%s", u.Op, nodeToString(u.Operand))
}

// Binary is an infix operator application.
type Binary struct {
	InferredTypeHolder
	Op    Op
	Left  Node
	Right Node
	Pos   SourcePos
}

var _ Node = (*Binary)(nil)

func (b *Binary) GetSourcePos() SourcePos { return b.Pos }

func (b *Binary) Infer(env *TypeEnv, st *InferState) (hm.Type, error) {
	lt, err := b.Left.Infer(env, st)
	if err != nil {
		return nil, err
	}
	rt, err := b.Right.Infer(env, st)
	if err != nil {
		return nil, err
	}

	var result hm.Type
	switch b.Op.class() {
	case arithmeticOp:
		if err := st.Unify(lt, hm.NumType); err != nil {
			return nil, errAt(b.Left.GetSourcePos(), err)
		}
		if err := st.Unify(rt, hm.NumType); err != nil {
			return nil, errAt(b.Right.GetSourcePos(), err)
		}
		result = hm.NumType
	case orderingOp:
		if err := st.Unify(lt, hm.NumType); err != nil {
			return nil, errAt(b.Left.GetSourcePos(), err)
		}
		if err := st.Unify(rt, hm.NumType); err != nil {
			return nil, errAt(b.Right.GetSourcePos(), err)
		}
		result = hm.BoolType
	case equalityOp:
		// The operands only need to agree with each other, not with any
		// fixed type. Tuples and functions compare too, recursively. The
		// left operand sets the expectation the right must meet.
		if err := st.Unify(rt, lt); err != nil {
			return nil, errAt(b.Pos, err)
		}
		result = hm.BoolType
	case logicalOp:
		if err := st.Unify(lt, hm.BoolType); err != nil {
			return nil, errAt(b.Left.GetSourcePos(), err)
		}
		if err := st.Unify(rt, hm.BoolType); err != nil {
			return nil, errAt(b.Right.GetSourcePos(), err)
		}
		result = hm.BoolType
	}

	b.SetInferredType(result)
	return result, nil
}

func (b *Binary) Eval(env *Env) (Value, error) {
	// && and || decide on the left operand alone when they can.
	if b.Op.class() == logicalOp {
		return b.evalLogical(env)
	}

	leftVal, err := b.Left.Eval(env)
	if err != nil {
		return nil, err
	}
	rightVal, err := b.Right.Eval(env)
	if err != nil {
		return nil, err
	}

	switch b.Op.class() {
	case arithmeticOp:
		return b.evalArithmetic(leftVal, rightVal)
	case orderingOp:
		return b.evalOrdering(leftVal, rightVal)
	default:
		eq := valuesEqual(leftVal, rightVal)
		if b.Op == OpNe {
			eq = !eq
		}
		return BoolValue{Val: eq}, nil
	}
}

func (b *Binary) evalArithmetic(leftVal, rightVal Value) (Value, error) {
	l, ok := leftVal.(NumValue)
	if !ok {
		return nil, fmt.Errorf("operator %s requires Num value, got %T", b.Op, leftVal)
	}
	r, ok := rightVal.(NumValue)
	if !ok {
		return nil, fmt.Errorf("operator %s requires Num value, got %T", b.Op, rightVal)
	}

	switch b.Op {
	case OpAdd:
		return NumValue{Val: l.Val + r.Val}, nil
	case OpSub:
		return NumValue{Val: l.Val - r.Val}, nil
	case OpMul:
		return NumValue{Val: l.Val * r.Val}, nil
	case OpDiv:
		if r.Val == 0 {
			return nil, errAt(b.Pos, DivisionByZeroError{})
		}
		return NumValue{Val: l.Val / r.Val}, nil
	default:
		if r.Val == 0 {
			return nil, errAt(b.Pos, DivisionByZeroError{})
		}
		return NumValue{Val: l.Val % r.Val}, nil
	}
}

func (b *Binary) evalOrdering(leftVal, rightVal Value) (Value, error) {
	l, ok := leftVal.(NumValue)
	if !ok {
		return nil, fmt.Errorf("operator %s requires Num value, got %T", b.Op, leftVal)
	}
	r, ok := rightVal.(NumValue)
	if !ok {
		return nil, fmt.Errorf("operator %s requires Num value, got %T", b.Op, rightVal)
	}

	var result bool
	switch b.Op {
	case OpLt:
		result = l.Val < r.Val
	case OpLe:
		result = l.Val <= r.Val
	case OpGt:
		result = l.Val > r.Val
	default:
		result = l.Val >= r.Val
	}
	return BoolValue{Val: result}, nil
}

func (b *Binary) evalLogical(env *Env) (Value, error) {
	leftVal, err := b.Left.Eval(env)
	if err != nil {
		return nil, err
	}
	l, ok := leftVal.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("operator %s requires Bool value, got %T", b.Op, leftVal)
	}

	if b.Op == OpAnd && !l.Val {
		return BoolValue{Val: false}, nil
	}
	if b.Op == OpOr && l.Val {
		return BoolValue{Val: true}, nil
	}

	rightVal, err := b.Right.Eval(env)
	if err != nil {
		return nil, err
	}
	r, ok := rightVal.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("operator %s requires Bool value, got %T", b.Op, rightVal)
	}
	return BoolValue{Val: r.Val}, nil
}

func (b *Binary) String() string {
	return fmt.Sprintf("%s %s %s", nodeToString(b.Left), b.Op, nodeToString(b.Right))
}
