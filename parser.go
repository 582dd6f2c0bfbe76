// parser.go
//
// Grammar-driven parser producing the typed AST.
//
// Expressions are parsed with explicit binding powers reproducing the
// declared precedence table, lowest to highest, all left-associative:
//
//	and < or < {==, <} < {+, -} < {*, //} < . < call
//
// The ordering places `and` below `or`; that is the declared precedence,
// not a typo. Attribute access and calls continue only from atomic operands
// (names, booleans, parenthesized groups and the results of calls and
// attribute access), so `1(2)` and `1.x` are rejected at the offending
// token.
//
// The parser pulls tokens from the lexer one at a time with a single token
// of lookahead. Parsing is all-or-nothing: the first token without a valid
// continuation aborts with a *Diagnostic and no partial tree escapes.
package nolang

import (
	"fmt"
	"strconv"
)

// Parse converts source text into a Program. The filename is used only in
// diagnostics. On failure the returned error is always a *Diagnostic.
func Parse(src, filename string) (*Program, error) {
	p := &parser{lex: NewLexer(filename, src), src: src, filename: filename}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.program()
}

type parser struct {
	lex      *Lexer
	src      string
	filename string
	cur      Token // one-token lookahead
}

// -----------------------------------------------------------------------------
// token plumbing
// -----------------------------------------------------------------------------

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// expect consumes the current token if it has the wanted kind, failing at it
// otherwise.
func (p *parser) expect(k TokenKind) (Token, error) {
	if p.cur.Kind != k {
		return Token{}, p.fail()
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return t, nil
}

func (p *parser) expectText(k TokenKind) (string, error) {
	t, err := p.expect(k)
	return t.Text, err
}

// fail rejects the current token.
func (p *parser) fail() error {
	t := p.cur
	msg := fmt.Sprintf("unexpected token %q", p.src[t.Range.Start:t.Range.End])
	switch {
	case t.Kind == EOF:
		msg = "unexpected end of input"
	case t.Kind == SEMICOLON && t.Text != ";":
		msg = "unexpected end of statement" // synthetic terminator
	}
	return p.failMsg(msg)
}

func (p *parser) failMsg(msg string) error {
	t := p.cur
	width := t.Range.End - t.Range.Start
	if width < 1 {
		width = 1
	}
	return &Diagnostic{
		Kind:     DiagParse,
		Msg:      msg,
		Filename: p.filename,
		Line:     lineAt(p.src, t.Range.Line),
		Lineno:   t.Range.Line,
		StartCol: t.Range.Col,
		EndCol:   t.Range.Col + width,
		atEOF:    t.Kind == EOF,
	}
}

// skipTerminators discards statement terminators between items. The
// automatic termination rule emits one after every closing brace followed by
// a newline, so declaration lists and statement lists must tolerate them.
func (p *parser) skipTerminators() error {
	for p.cur.Kind == SEMICOLON {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// declarations
// -----------------------------------------------------------------------------

func (p *parser) program() (*Program, error) {
	elems, err := p.declarations(EOF)
	if err != nil {
		return nil, err
	}
	return &Program{Elements: elems}, nil
}

// declarations accumulates functions and class definitions up to the closing
// kind, which is left unconsumed.
func (p *parser) declarations(until TokenKind) ([]Declaration, error) {
	var elems []Declaration
	for {
		if err := p.skipTerminators(); err != nil {
			return nil, err
		}
		switch p.cur.Kind {
		case until:
			return elems, nil
		case FUNCTION:
			f, err := p.function()
			if err != nil {
				return nil, err
			}
			elems = append(elems, f)
		case CLASS:
			c, err := p.classDefinition()
			if err != nil {
				return nil, err
			}
			elems = append(elems, c)
		default:
			return nil, p.fail()
		}
	}
}

// function parses `def name(args…) { body }`, where a bare trailing
// expression in the body is sugar for returning it.
func (p *parser) function() (*Function, error) {
	if err := p.advance(); err != nil { // past 'def'
		return nil, err
	}
	name, err := p.expectText(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	args, err := p.argList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.statements(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &Function{Name: name, Args: args, Body: body}, nil
}

// argList parses a parenthesized, possibly empty parameter name list.
// Parameter names must be unique.
func (p *parser) argList() ([]string, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var names []string
	if p.cur.Kind != RPAREN {
		for {
			if p.cur.Kind == IDENTIFIER {
				for _, seen := range names {
					if seen == p.cur.Text {
						return nil, p.failMsg(fmt.Sprintf("duplicate parameter %q", p.cur.Text))
					}
				}
			}
			name, err := p.expectText(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
			if p.cur.Kind != COMMA {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *parser) classDefinition() (*ClassDefinition, error) {
	if err := p.advance(); err != nil { // past 'class'
		return nil, err
	}
	name, err := p.expectText(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	super := ""
	if p.cur.Kind == LPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		super, err = p.expectText(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.declarations(RCURLY)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &ClassDefinition{Name: name, Body: body, Super: super}, nil
}

// -----------------------------------------------------------------------------
// statements
// -----------------------------------------------------------------------------

// statements accumulates a statement list up to an unconsumed closing brace.
// When allowTrailing is set (function bodies only), a bare expression
// directly before the brace becomes an implicit return.
func (p *parser) statements(allowTrailing bool) ([]Statement, error) {
	var stmts []Statement
	for {
		if err := p.skipTerminators(); err != nil {
			return nil, err
		}
		switch p.cur.Kind {
		case RCURLY:
			return stmts, nil
		case EOF:
			return nil, p.fail()
		case VAR:
			s, err := p.varDeclaration()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		case RETURN:
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, _, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			if err := p.terminator(); err != nil {
				return nil, err
			}
			stmts = append(stmts, &Return{Expr: e})
		case RAISE:
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, _, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			if err := p.terminator(); err != nil {
				return nil, err
			}
			stmts = append(stmts, &Raise{Expr: e})
		case WHILE:
			cond, body, err := p.condBlock()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, &While{Cond: cond, Body: body})
		case IF:
			cond, body, err := p.condBlock()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, &If{Cond: cond, Body: body})
		case TRY:
			s, err := p.tryExcept()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		default:
			s, implicitReturn, err := p.simpleStatement(allowTrailing)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
			if implicitReturn {
				return stmts, nil
			}
		}
	}
}

// terminator consumes the statement terminator. A closing brace also ends
// the final statement of a block, mirroring how the automatic termination
// rule treats a newline there.
func (p *parser) terminator() error {
	if p.cur.Kind == SEMICOLON {
		return p.advance()
	}
	if p.cur.Kind == RCURLY {
		return nil
	}
	return p.fail()
}

// varDeclaration parses `var a, b, c;`.
func (p *parser) varDeclaration() (Statement, error) {
	if err := p.advance(); err != nil { // past 'var'
		return nil, err
	}
	name, err := p.expectText(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	names := []string{name}
	for p.cur.Kind == COMMA {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectText(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := p.terminator(); err != nil {
		return nil, err
	}
	return &VarDeclaration{Names: names}, nil
}

// condBlock parses `<keyword> expr { body }` for while and if.
func (p *parser) condBlock() (Expression, []Statement, error) {
	if err := p.advance(); err != nil { // past the keyword
		return nil, nil, err
	}
	cond, _, err := p.expression(0)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(LCURLY); err != nil {
		return nil, nil, err
	}
	body, err := p.statements(false)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(RCURLY); err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// tryExcept parses `try { body } except name { handler }`. Exactly one
// handler clause; no finally clause is reachable from the grammar.
func (p *parser) tryExcept() (Statement, error) {
	if err := p.advance(); err != nil { // past 'try'
		return nil, err
	}
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.statements(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	if _, err := p.expect(EXCEPT); err != nil {
		return nil, err
	}
	name, err := p.expectText(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	handler, err := p.statements(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &TryExcept{Body: body, Excepts: []string{name}, Handler: handler}, nil
}

// simpleStatement parses the statement forms that begin with an expression:
// plain expression statements, assignments, attribute assignments, and, in
// function bodies, the trailing expression that desugars to a return.
// The second result reports that the trailing-expression form closed the
// surrounding body.
func (p *parser) simpleStatement(allowTrailing bool) (Statement, bool, error) {
	start := p.cur
	expr, _, err := p.expression(0)
	if err != nil {
		return nil, false, err
	}

	if p.cur.Kind == ASSIGN {
		var build func(Expression) Statement
		switch target := expr.(type) {
		case *Getattr:
			build = func(v Expression) Statement {
				return &Setattr{Target: target.Obj, Name: target.Name, Value: v}
			}
		case *Identifier:
			if start.Kind != IDENTIFIER {
				// `(a) = …` is not an assignment target.
				return nil, false, p.fail()
			}
			build = func(v Expression) Statement {
				return &Assignment{Name: target.Name, Value: v}
			}
		default:
			return nil, false, p.fail()
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		value, _, err := p.expression(0)
		if err != nil {
			return nil, false, err
		}
		if err := p.terminator(); err != nil {
			return nil, false, err
		}
		return build(value), false, nil
	}

	if p.cur.Kind == RCURLY && allowTrailing {
		return &Return{Expr: expr}, true, nil
	}
	if err := p.terminator(); err != nil {
		return nil, false, err
	}
	return &ExprStatement{Expr: expr}, false, nil
}

// -----------------------------------------------------------------------------
// expressions
// -----------------------------------------------------------------------------

// leftBP returns the binding power of an infix or postfix token, zero when
// the token cannot continue an expression.
func leftBP(k TokenKind) int {
	switch k {
	case AND:
		return 10
	case OR:
		return 20
	case EQ, LT:
		return 30
	case PLUS, MINUS:
		return 40
	case STAR, TRUEDIV:
		return 50
	case DOT:
		return 60
	case LPAREN:
		return 70
	}
	return 0
}

// expression parses with the given minimum binding power. The boolean result
// reports whether the expression is atomic, i.e. a valid receiver for
// attribute access and calls.
func (p *parser) expression(minBP int) (Expression, bool, error) {
	left, atom, err := p.primary()
	if err != nil {
		return nil, false, err
	}
	for {
		op := p.cur
		bp := leftBP(op.Kind)
		if bp == 0 || bp <= minBP {
			break
		}
		if (op.Kind == DOT || op.Kind == LPAREN) && !atom {
			break
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		switch op.Kind {
		case DOT:
			name, err := p.expectText(IDENTIFIER)
			if err != nil {
				return nil, false, err
			}
			left, atom = &Getattr{Obj: left, Name: name}, true
		case LPAREN:
			args, err := p.callArgs()
			if err != nil {
				return nil, false, err
			}
			left, atom = &Call{Callee: left, Args: args}, true
		case AND:
			right, _, err := p.expression(bp)
			if err != nil {
				return nil, false, err
			}
			left, atom = &And{Left: left, Right: right}, false
		case OR:
			right, _, err := p.expression(bp)
			if err != nil {
				return nil, false, err
			}
			left, atom = &Or{Left: left, Right: right}, false
		default:
			right, _, err := p.expression(bp)
			if err != nil {
				return nil, false, err
			}
			left, atom = &BinOp{Op: op.Text, Left: left, Right: right}, false
		}
	}
	return left, atom, nil
}

func (p *parser) primary() (Expression, bool, error) {
	switch p.cur.Kind {
	case INTEGER:
		v, err := strconv.ParseInt(p.cur.Text, 10, 64)
		if err != nil {
			return nil, false, p.failMsg("integer literal out of range")
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &Number{Value: v}, false, nil
	case STRING:
		val := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &String{Value: val}, false, nil
	case TRUE:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &TrueNode{}, true, nil
	case FALSE:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &FalseNode{}, true, nil
	case IDENTIFIER:
		name := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &Identifier{Name: name}, true, nil
	case LPAREN:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		e, _, err := p.expression(0)
		if err != nil {
			return nil, false, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, false, err
		}
		return e, true, nil
	default:
		return nil, false, p.fail()
	}
}

// callArgs parses a comma-separated positional argument list after the
// opening paren, consuming the closing paren. There is no keyword-argument
// form; `name = value` inside an argument list fails at the `=` token.
func (p *parser) callArgs() ([]Expression, error) {
	var args []Expression
	if p.cur.Kind == RPAREN {
		return args, p.advance()
	}
	for {
		e, _, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if p.cur.Kind != COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}
