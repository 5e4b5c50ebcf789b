package parser

import "fmt"

// 式の優先順位 (低い順、すべて左結合)
//
//	or             := and (OR and)*
//	and            := equality (AND equality)*
//	equality       := relational (("=" | "<>") relational)*
//	relational     := additive (("<" | ">" | "<=" | ">=") additive)*
//	additive       := multiplicative (("+" | "-") multiplicative)*
//	multiplicative := primary (("*" | "/") primary)*
//	primary        := identifier | number | string | "(" expr ")"
//
// 単項演算子 (NOT, 単項マイナス) はサポートしない

func (p *parser) parseExpression() (Expression, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxExpressionDepth {
		return nil, p.depthError()
	}
	return p.parseOrExpression()
}

func (p *parser) depthError() error {
	return p.syntaxError(fmt.Sprintf("expression nesting of at most %d levels", MaxExpressionDepth))
}

func (p *parser) parseOrExpression() (Expression, error) {
	return p.parseBinary(p.parseAndExpression, TOKEN_KEYWORD, "OR")
}

func (p *parser) parseAndExpression() (Expression, error) {
	return p.parseBinary(p.parseEqualityExpression, TOKEN_KEYWORD, "AND")
}

func (p *parser) parseEqualityExpression() (Expression, error) {
	return p.parseBinary(p.parseRelationalExpression, TOKEN_OPERATOR, "=", "<>")
}

func (p *parser) parseRelationalExpression() (Expression, error) {
	return p.parseBinary(p.parseAdditiveExpression, TOKEN_OPERATOR, "<", ">", "<=", ">=")
}

func (p *parser) parseAdditiveExpression() (Expression, error) {
	return p.parseBinary(p.parseMultiplicativeExpression, TOKEN_OPERATOR, "+", "-")
}

func (p *parser) parseMultiplicativeExpression() (Expression, error) {
	return p.parseBinary(p.parsePrimaryExpression, TOKEN_OPERATOR, "*", "/")
}

// parseBinary は operand (op operand)* を左結合でパースする
// 演算子の連鎖は木を左に深くするので、括弧と同じく深さの上限を課す
func (p *parser) parseBinary(operand func() (Expression, error), t TokenType, operators ...string) (Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	depth := expressionDepth(left)
	for {
		operator, ok := p.matchOperator(t, operators)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		depth = max(depth, expressionDepth(right)) + 1
		if depth > MaxExpressionDepth {
			return nil, p.depthError()
		}
		left = &BinaryExpression{Left: left, Operator: operator, Right: right}
	}
}

// expressionDepth は式の木の高さを返す (葉は 1)
// パース済みの部分木は上限以下なので再帰は浅い
func expressionDepth(expr Expression) int {
	b, ok := expr.(*BinaryExpression)
	if !ok {
		return 1
	}
	return max(expressionDepth(b.Left), expressionDepth(b.Right)) + 1
}

// matchOperator は現在のトークンが operators のいずれかなら消費して返す
func (p *parser) matchOperator(t TokenType, operators []string) (string, bool) {
	tok, ok := p.currentToken()
	if !ok || tok.Type != t {
		return "", false
	}
	for _, op := range operators {
		if tok.Literal == op {
			p.nextToken()
			return op, true
		}
	}
	return "", false
}

func (p *parser) parsePrimaryExpression() (Expression, error) {
	tok, ok := p.currentToken()
	if !ok {
		return nil, p.syntaxError(expectedExpression)
	}
	switch tok.Type {
	case TOKEN_IDENT:
		p.nextToken()
		return &Identifier{Value: tok.Literal}, nil
	case TOKEN_NUMBER:
		p.nextToken()
		return &Literal{Value: tok.Literal, Kind: LiteralNumber}, nil
	case TOKEN_STRING:
		p.nextToken()
		return &Literal{Value: tok.Literal, Kind: LiteralString}, nil
	case TOKEN_PUNCTUATION:
		if tok.Literal == "(" {
			p.nextToken()
			// 括弧はグルーピングのみでノードにはならない
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TOKEN_PUNCTUATION, ")"); err != nil {
				return nil, err
			}
			return expr, nil
		}
	}
	return nil, p.syntaxError(expectedExpression)
}
