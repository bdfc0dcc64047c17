package hobbes

import (
	"fmt"
)

// ParseError reports source text the grammar cannot accept.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse turns source text into a single top-level AST. The grammar, loosely:
//
//	program := seq
//	seq     := expr {';' expr}
//	expr    := 'def' IDENT ':=' expr
//	         | 'fn' [IDENT] pattern '->' seq 'end'
//	         | 'if' expr 'then' seq {'elsif' expr 'then' seq} 'else' seq 'end'
//	         | binary operator chains over unary, call, and primary
//	pattern := IDENT | '(' [IDENT {',' IDENT}] ')'
//
// Parenthesized expression lists are tuples: () is the empty tuple, (e) is
// grouping, (e1, e2) a pair. A call is a postfix parenthesized list; more
// than one element passes a tuple argument.
func Parse(source string) (Node, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	node, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != EOF {
		return nil, p.errorf("unexpected %s", p.cur().Type)
	}
	return node, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) match(t TokenType) bool {
	if p.cur().Type == t {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(t TokenType) (Token, error) {
	if p.cur().Type != t {
		return Token{}, p.errorf("expected %s, found %s", t, p.cur().Type)
	}
	return p.advance(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	tok := p.cur()
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: tok.Line, Col: tok.Col}
}

func (p *parser) parseSeq() (Node, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.match(SEMICOLON) {
		return first, nil
	}
	rest, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	return &Seq{First: first, Rest: rest}, nil
}

func (p *parser) parseExpr() (Node, error) {
	if p.cur().Type == DEF {
		return p.parseDefine()
	}
	return p.parseOr()
}

func (p *parser) parseDefine() (Node, error) {
	tok, err := p.expect(DEF)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Define{Name: name.Lexeme, Value: value, Pos: tok.Pos()}, nil
}

func (p *parser) parseFn() (Node, error) {
	tok, err := p.expect(FN)
	if err != nil {
		return nil, err
	}

	// A name directly after fn, followed by the parameter pattern, names
	// the function for recursive self-reference: fn fact n -> ... end.
	var selfName string
	if p.cur().Type == IDENT && (p.peek().Type == IDENT || p.peek().Type == LPAREN) {
		selfName = p.advance().Lexeme
	}

	param, err := p.parseParamPattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END); err != nil {
		return nil, err
	}
	return &FunDecl{SelfName: selfName, Param: param, Body: body, Pos: tok.Pos()}, nil
}

func (p *parser) parseParamPattern() (ParamPattern, error) {
	if p.cur().Type == IDENT {
		return ParamPattern{Names: []string{p.advance().Lexeme}}, nil
	}

	if _, err := p.expect(LPAREN); err != nil {
		return ParamPattern{}, err
	}
	pattern := ParamPattern{Tuple: true}
	if p.match(RPAREN) {
		return pattern, nil
	}
	for {
		name, err := p.expect(IDENT)
		if err != nil {
			return ParamPattern{}, err
		}
		pattern.Names = append(pattern.Names, name.Lexeme)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return ParamPattern{}, err
	}
	return pattern, nil
}

func (p *parser) parseIf() (Node, error) {
	tok, err := p.expect(IF)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN); err != nil {
		return nil, err
	}
	then, err := p.parseSeq()
	if err != nil {
		return nil, err
	}

	var elseIfs []ElseIf
	for p.match(ELSIF) {
		eiCond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN); err != nil {
			return nil, err
		}
		eiBody, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ElseIf{Cond: eiCond, Body: eiBody})
	}

	if _, err := p.expect(ELSE); err != nil {
		return nil, err
	}
	elseBody, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(END); err != nil {
		return nil, err
	}

	return &Conditional{Cond: cond, Then: then, ElseIfs: elseIfs, Else: elseBody, Pos: tok.Pos()}, nil
}

// binaryOps maps token types to operators per precedence level.
var (
	orOps         = map[TokenType]Op{OR: OpOr}
	andOps        = map[TokenType]Op{AND: OpAnd}
	equalityOps   = map[TokenType]Op{EQ: OpEq, NEQ: OpNe}
	comparisonOps = map[TokenType]Op{LESS: OpLt, LESSEQ: OpLe, GREATER: OpGt, GREATEREQ: OpGe}
	additiveOps   = map[TokenType]Op{PLUS: OpAdd, MINUS: OpSub}
	termOps       = map[TokenType]Op{STAR: OpMul, SLASH: OpDiv, PERCENT: OpMod}
)

// parseBinary parses a left-associative chain of operators at one
// precedence level, delegating operands to the next-tighter level.
func (p *parser) parseBinary(ops map[TokenType]Op, next func() (Node, error)) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur().Type]
		if !ok {
			return left, nil
		}
		tok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Pos: tok.Pos()}
	}
}

func (p *parser) parseOr() (Node, error) {
	return p.parseBinary(orOps, p.parseAnd)
}

func (p *parser) parseAnd() (Node, error) {
	return p.parseBinary(andOps, p.parseEquality)
}

func (p *parser) parseEquality() (Node, error) {
	return p.parseBinary(equalityOps, p.parseComparison)
}

func (p *parser) parseComparison() (Node, error) {
	return p.parseBinary(comparisonOps, p.parseAdditive)
}

func (p *parser) parseAdditive() (Node, error) {
	return p.parseBinary(additiveOps, p.parseTerm)
}

func (p *parser) parseTerm() (Node, error) {
	return p.parseBinary(termOps, p.parseUnary)
}

func (p *parser) parseUnary() (Node, error) {
	switch p.cur().Type {
	case BANG:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNot, Operand: operand, Pos: tok.Pos()}, nil
	case MINUS:
		// Unary minus desugars to subtraction from zero.
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &Number{Value: 0, Pos: tok.Pos()}
		return &Binary{Op: OpSub, Left: zero, Right: operand, Pos: tok.Pos()}, nil
	}
	return p.parseCall()
}

func (p *parser) parseCall() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == LPAREN {
		tok := p.advance()
		arg, err := p.parseTupleRest(tok)
		if err != nil {
			return nil, err
		}
		node = &FunCall{Fun: node, Arg: arg, Pos: tok.Pos()}
	}
	return node, nil
}

// parseTupleRest parses the remainder of a parenthesized expression list,
// the opening paren already consumed. A single element is grouping; zero or
// several make a tuple.
func (p *parser) parseTupleRest(open Token) (Node, error) {
	if p.match(RPAREN) {
		return &Tuple{Pos: open.Pos()}, nil
	}

	var elems []Node
	for {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	if len(elems) == 1 {
		return elems[0], nil
	}
	return &Tuple{Elems: elems, Pos: open.Pos()}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return &Number{Value: tok.Num, Pos: tok.Pos()}, nil
	case TRUE:
		p.advance()
		return &Boolean{Value: true, Pos: tok.Pos()}, nil
	case FALSE:
		p.advance()
		return &Boolean{Value: false, Pos: tok.Pos()}, nil
	case IDENT:
		p.advance()
		return &Symbol{Name: tok.Lexeme, Pos: tok.Pos()}, nil
	case LPAREN:
		p.advance()
		return p.parseTupleRest(tok)
	case FN:
		return p.parseFn()
	case IF:
		return p.parseIf()
	default:
		return nil, p.errorf("unexpected %s", tok.Type)
	}
}
