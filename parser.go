// parser.go
//
// Parser is a Pratt (operator-precedence) parser: each token type that can
// start an expression registers a prefix parse function, and each token
// type that can continue one registers an infix parse function together
// with a binding precedence. parseExpression climbs the precedence ladder
// by comparing the precedence of the next token against the minimum
// precedence it was called with, recursing for anything tighter.
//
// The parser never stops on the first error. It records each one in Errors
// and keeps going, which is what lets a single `run` invocation report
// every syntax problem in a file instead of just the first.
package mlang

import (
	"fmt"
	"strconv"
)

// Precedence ranks how tightly an infix operator binds. Higher binds
// tighter; CALL binds tighter than any binary operator so that
// `add(1) + 2` parses as `(add(1)) + 2`, and INDEX binds tighter still.
type Precedence int

const (
	LOWEST Precedence = iota
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
)

var precedences = map[TokenType]Precedence{
	EQ:       EQUALS,
	NOT_EQ:   EQUALS,
	LT:       LESSGREATER,
	GT:       LESSGREATER,
	PLUS:     SUM,
	MINUS:    SUM,
	SLASH:    PRODUCT,
	ASTERISK: PRODUCT,
	LPAREN:   CALL,
	LBRACKET: INDEX,
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// Parser consumes a token stream from a Lexer and builds a Program.
type Parser struct {
	l *Lexer

	curToken  Token
	peekToken Token

	diagnostics []ParseError

	prefixParseFns map[TokenType]prefixParseFn
	infixParseFns  map[TokenType]infixParseFn
}

// NewParser constructs a Parser reading from l and primes the two-token
// lookahead window.
func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[TokenType]prefixParseFn{
		IDENT:     p.parseIdentifier,
		INT:       p.parseIntegerLiteral,
		STRING:    p.parseStringLiteral,
		BANG:      p.parsePrefixExpression,
		MINUS:     p.parsePrefixExpression,
		TRUE_TOK:  p.parseBooleanLiteral,
		FALSE_TOK: p.parseBooleanLiteral,
		LPAREN:    p.parseGroupedExpression,
		IF:        p.parseIfExpression,
		FUNCTION:  p.parseFunctionLiteral,
		LBRACKET:  p.parseArrayLiteral,
		LBRACE:    p.parseHashLiteral,
	}

	p.infixParseFns = map[TokenType]infixParseFn{
		PLUS:     p.parseInfixExpression,
		MINUS:    p.parseInfixExpression,
		SLASH:    p.parseInfixExpression,
		ASTERISK: p.parseInfixExpression,
		EQ:       p.parseInfixExpression,
		NOT_EQ:   p.parseInfixExpression,
		LT:       p.parseInfixExpression,
		GT:       p.parseInfixExpression,
		LPAREN:   p.parseCallExpression,
		LBRACKET: p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every diagnostic message accumulated while parsing, in
// the order they were recorded. An empty slice means the program parsed
// cleanly.
func (p *Parser) Errors() []string {
	msgs := make([]string, len(p.diagnostics))
	for i, d := range p.diagnostics {
		msgs[i] = d.Msg
	}
	return msgs
}

// Diagnostics returns the same errors as Errors, but with the source
// position each one was recorded at — the form RenderDiagnostic's caret
// snippet needs and a plain string list can't carry.
func (p *Parser) Diagnostics() []ParseError { return p.diagnostics }

func (p *Parser) addDiagnostic(tok Token, msg string) {
	p.diagnostics = append(p.diagnostics, ParseError{Line: tok.Line, Col: tok.Col, Msg: msg})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t TokenType) bool { return p.peekToken.Type == t }

// expectPeek consumes the peek token and advances if it has type t,
// otherwise records a diagnostic and leaves the cursor in place.
func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.addDiagnostic(p.peekToken, msg)
}

func (p *Parser) noPrefixParseFnError(t Token) {
	msg := fmt.Sprintf("No prefix parse function found for %s", t)
	p.addDiagnostic(t, msg)
}

func (p *Parser) peekPrecedence() Precedence {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() Precedence {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram consumes the whole token stream and builds a Program. It
// always returns a non-nil Program, even in the presence of errors — the
// caller checks Errors() before evaluating.
func (p *Parser) ParseProgram() *Program {
	program := &Program{Statements: []Statement{}}
	for !p.curTokenIs(EOFILE) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case LET:
		return p.parseLetStatement()
	case RETURN:
		return p.parseReturnStatement()
	case WHILE:
		return p.parseWhileStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() Statement {
	stmt := &LetStatement{Token: p.curToken}

	if !p.expectPeek(IDENT) {
		return nil
	}
	stmt.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)

	for !p.curTokenIs(SEMICOLON) {
		p.nextToken()
		if p.curTokenIs(EOFILE) {
			msg := fmt.Sprintf("expected %s, got %s", SEMICOLON, EOFILE)
			p.addDiagnostic(p.curToken, msg)
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseReturnStatement() Statement {
	stmt := &ReturnStatement{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(SEMICOLON) {
		return stmt
	}

	stmt.ReturnValue = p.parseExpression(LOWEST)

	if p.peekTokenIs(SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() Statement {
	stmt := &WhileStatement{Token: p.curToken}

	if !p.expectPeek(LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(RPAREN) {
		return nil
	}
	if !p.expectPeek(LBRACE) {
		return nil
	}
	stmt.LoopBody = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)

	if p.peekTokenIs(SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.curToken, Statements: []Statement{}}
	p.nextToken()

	for !p.curTokenIs(RBRACE) && !p.curTokenIs(EOFILE) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseExpression(precedence Precedence) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() Expression {
	lit := &IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("failed to parse integer %s", p.curToken.Literal)
		p.addDiagnostic(p.curToken, msg)
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(TRUE_TOK)}
}

func (p *Parser) parsePrefixExpression() Expression {
	expr := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expr := &InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseIfExpression() Expression {
	expr := &IfExpression{Token: p.curToken}

	if !p.expectPeek(LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(RPAREN) {
		return nil
	}
	if !p.expectPeek(LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(ELSE) {
		p.nextToken()
		if !p.expectPeek(LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStatement()
	}
	return expr
}

func (p *Parser) parseFunctionLiteral() Expression {
	lit := &FunctionLiteral{Token: p.curToken}

	if !p.expectPeek(LPAREN) {
		return nil
	}
	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(LBRACE) {
		return nil
	}
	lit.Body = p.parseBlockStatement()
	return lit
}

func (p *Parser) parseFunctionParameters() []*Identifier {
	idents := []*Identifier{}

	if p.peekTokenIs(RPAREN) {
		p.nextToken()
		return idents
	}

	p.nextToken()
	idents = append(idents, &Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(COMMA) {
		p.nextToken()
		p.nextToken()
		idents = append(idents, &Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(RPAREN) {
		return nil
	}
	return idents
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	expr := &CallExpression{Token: p.curToken, Function: function}
	expr.Arguments = p.parseExpressionList(RPAREN)
	return expr
}

func (p *Parser) parseArrayLiteral() Expression {
	arr := &ArrayLiteral{Token: p.curToken}
	arr.Elements = p.parseExpressionList(RBRACKET)
	return arr
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	expr := &IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseHashLiteral() Expression {
	hash := &HashLiteral{Token: p.curToken}

	for !p.peekTokenIs(RBRACE) {
		if p.peekTokenIs(EOFILE) {
			msg := fmt.Sprintf("expected expression or %s, got %s", RBRACE, EOFILE)
			p.addDiagnostic(p.peekToken, msg)
			return nil
		}
		p.nextToken()
		key := p.parseExpression(LOWEST)

		if !p.expectPeek(COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)

		hash.Pairs = append(hash.Pairs, HashPairNode{Key: key, Value: value})

		if !p.peekTokenIs(RBRACE) && !p.expectPeek(COMMA) {
			return nil
		}
	}

	if !p.expectPeek(RBRACE) {
		return nil
	}
	return hash
}

// parseExpressionList parses a comma-separated list of expressions up to
// and including end, used for call arguments and array elements alike.
func (p *Parser) parseExpressionList(end TokenType) []Expression {
	list := []Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}
