package hobbes

import (
	"fmt"
	"strconv"
	"unicode"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	COMMA     // ","
	SEMICOLON // ";"
	ASSIGN    // ":="
	ARROW     // "->"

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	LESS
	LESSEQ
	GREATER
	GREATEREQ
	EQ  // "=="
	NEQ // "<>"
	AND // "&&"
	OR  // "||"
	BANG

	// Literals & identifiers
	IDENT
	NUMBER
	TRUE
	FALSE

	// Keywords
	DEF
	FN
	IF
	THEN
	ELSIF
	ELSE
	END
)

var tokenNames = map[TokenType]string{
	EOF:       "end of input",
	ILLEGAL:   "illegal token",
	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	SEMICOLON: ";",
	ASSIGN:    ":=",
	ARROW:     "->",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	LESS:      "<",
	LESSEQ:    "<=",
	GREATER:   ">",
	GREATEREQ: ">=",
	EQ:        "==",
	NEQ:       "<>",
	AND:       "&&",
	OR:        "||",
	BANG:      "!",
	IDENT:     "identifier",
	NUMBER:    "number",
	TRUE:      "true",
	FALSE:     "false",
	DEF:       "def",
	FN:        "fn",
	IF:        "if",
	THEN:      "then",
	ELSIF:     "elsif",
	ELSE:      "else",
	END:       "end",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"def":   DEF,
	"fn":    FN,
	"if":    IF,
	"then":  THEN,
	"elsif": ELSIF,
	"else":  ELSE,
	"end":   END,
	"true":  TRUE,
	"false": FALSE,
	// Word form of boolean negation; same token as '!'.
	"not": BANG,
}

// Token is a lexical token with its raw text and position.
type Token struct {
	Type   TokenType
	Lexeme string
	Num    int64 // parsed value for NUMBER tokens
	Line   int
	Col    int
}

func (t Token) Pos() SourcePos {
	return SourcePos{Line: t.Line, Col: t.Col}
}

// LexError reports an unexpected character or malformed literal.
type LexError struct {
	Msg  string
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// Lex tokenizes source text. Line comments start with '#'.
func Lex(source string) ([]Token, error) {
	lx := &lexer{src: []rune(source), line: 1, col: 1}

	var tokens []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (lx *lexer) peek() rune {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) advance() rune {
	ch := lx.src[lx.pos]
	lx.pos++
	if ch == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return ch
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch {
		case unicode.IsSpace(lx.peek()):
			lx.advance()
		case lx.peek() == '#':
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

func (lx *lexer) errorf(line, col int, format string, args ...any) error {
	return &LexError{Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}

func (lx *lexer) next() (Token, error) {
	lx.skipSpace()

	line, col := lx.line, lx.col
	if lx.pos >= len(lx.src) {
		return Token{Type: EOF, Line: line, Col: col}, nil
	}

	simple := func(t TokenType, lexeme string) Token {
		return Token{Type: t, Lexeme: lexeme, Line: line, Col: col}
	}

	ch := lx.advance()
	switch ch {
	case '(':
		return simple(LPAREN, "("), nil
	case ')':
		return simple(RPAREN, ")"), nil
	case ',':
		return simple(COMMA, ","), nil
	case ';':
		return simple(SEMICOLON, ";"), nil
	case '+':
		return simple(PLUS, "+"), nil
	case '*':
		return simple(STAR, "*"), nil
	case '/':
		return simple(SLASH, "/"), nil
	case '%':
		return simple(PERCENT, "%"), nil
	case '!':
		return simple(BANG, "!"), nil
	case '-':
		if lx.peek() == '>' {
			lx.advance()
			return simple(ARROW, "->"), nil
		}
		return simple(MINUS, "-"), nil
	case ':':
		if lx.peek() == '=' {
			lx.advance()
			return simple(ASSIGN, ":="), nil
		}
		return Token{}, lx.errorf(line, col, "unexpected character ':'")
	case '<':
		switch lx.peek() {
		case '=':
			lx.advance()
			return simple(LESSEQ, "<="), nil
		case '>':
			lx.advance()
			return simple(NEQ, "<>"), nil
		}
		return simple(LESS, "<"), nil
	case '>':
		if lx.peek() == '=' {
			lx.advance()
			return simple(GREATEREQ, ">="), nil
		}
		return simple(GREATER, ">"), nil
	case '=':
		if lx.peek() == '=' {
			lx.advance()
			return simple(EQ, "=="), nil
		}
		return Token{}, lx.errorf(line, col, "unexpected character '=' (did you mean '==' or ':='?)")
	case '&':
		if lx.peek() == '&' {
			lx.advance()
			return simple(AND, "&&"), nil
		}
		return Token{}, lx.errorf(line, col, "unexpected character '&'")
	case '|':
		if lx.peek() == '|' {
			lx.advance()
			return simple(OR, "||"), nil
		}
		return Token{}, lx.errorf(line, col, "unexpected character '|'")
	}

	if unicode.IsDigit(ch) {
		start := lx.pos - 1
		for lx.pos < len(lx.src) && unicode.IsDigit(lx.peek()) {
			lx.advance()
		}
		lexeme := string(lx.src[start:lx.pos])
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return Token{}, lx.errorf(line, col, "malformed number literal %q", lexeme)
		}
		return Token{Type: NUMBER, Lexeme: lexeme, Num: n, Line: line, Col: col}, nil
	}

	if unicode.IsLetter(ch) || ch == '_' {
		start := lx.pos - 1
		for lx.pos < len(lx.src) {
			p := lx.peek()
			if !unicode.IsLetter(p) && !unicode.IsDigit(p) && p != '_' {
				break
			}
			lx.advance()
		}
		lexeme := string(lx.src[start:lx.pos])
		if kw, ok := keywords[lexeme]; ok {
			return simple(kw, lexeme), nil
		}
		return Token{Type: IDENT, Lexeme: lexeme, Line: line, Col: col}, nil
	}

	return Token{}, lx.errorf(line, col, "unexpected character %q", ch)
}
