package parser

// MaxExpressionDepth は WHERE 句の式のネストの上限
// 再帰下降のスタックを悪意ある入力から守る
const MaxExpressionDepth = 64

type parser struct {
	tokens   []Token
	position int // 現在のトークンの位置
	depth    int // 式のネストの深さ
}

// NewParser は新しい Parser を作成する
func NewParser(tokens []Token) *parser {
	return &parser{tokens: tokens}
}

// Compile はクエリ文字列を字句解析・構文解析して AST を返す
func Compile(query string) (Statement, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse はトークン列から1つの文の AST を作る
func Parse(tokens []Token) (Statement, error) {
	return NewParser(tokens).Parse()
}

// currentToken は現在のトークンを返す
// 終端に達していれば ok は false
func (p *parser) currentToken() (Token, bool) {
	if p.position >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.position], true
}

// nextToken は次のトークンへ進む
func (p *parser) nextToken() {
	p.position++
}

// currentTokenIs は現在のトークンが指定されたトークンかどうかを返す
func (p *parser) currentTokenIs(t TokenType, literal string) bool {
	tok, ok := p.currentToken()
	return ok && tok.Is(t, literal)
}

// expect は現在のトークンを期待して消費する
func (p *parser) expect(t TokenType, literal string) (Token, error) {
	tok, ok := p.currentToken()
	if !ok || !tok.Is(t, literal) {
		return Token{}, p.syntaxError(describeExpected(t, literal))
	}
	p.nextToken()
	return tok, nil
}

// syntaxError は現在位置での SyntaxError を作る
func (p *parser) syntaxError(expected string) error {
	tok, ok := p.currentToken()
	if !ok {
		return &SyntaxError{Expected: expected, Found: endOfInput, Pos: -1}
	}
	return &SyntaxError{Expected: expected, Found: describeToken(tok), Pos: tok.Pos}
}

func (p *parser) Parse() (Statement, error) {
	first, ok := p.currentToken()
	if !ok {
		return nil, ErrEmptyQuery
	}
	if first.Type != TOKEN_KEYWORD {
		return nil, &UnsupportedCommandError{Token: first}
	}

	var stmt Statement
	var err error
	switch first.Literal {
	case "SELECT":
		stmt, err = p.parseSelectStatement()
	case "INSERT":
		stmt, err = p.parseInsertStatement()
	case "UPDATE":
		stmt, err = p.parseUpdateStatement()
	case "DELETE":
		stmt, err = p.parseDeleteStatement()
	case "SHOW":
		stmt, err = p.parseShowStatement()
	default:
		return nil, &UnsupportedCommandError{Token: first}
	}
	if err != nil {
		return nil, err
	}

	// 末尾の ; は省略可能。それ以外のトークンが残っていればエラー
	if p.currentTokenIs(TOKEN_PUNCTUATION, ";") {
		p.nextToken()
	}
	if _, ok := p.currentToken(); ok {
		return nil, p.syntaxError(endOfInput)
	}
	return stmt, nil
}

func (p *parser) parseSelectStatement() (*SelectStatement, error) {
	stmt := &SelectStatement{}
	p.nextToken() // SELECT の次へ進む

	// カラムリストをパース
	if p.currentTokenIs(TOKEN_OPERATOR, "*") {
		p.nextToken()
		stmt.Wildcard = true
	} else {
		columns, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = columns
	}
	// FROM を期待
	if _, err := p.expect(TOKEN_KEYWORD, "FROM"); err != nil {
		return nil, err
	}
	// テーブル名をパース
	table, err := p.expect(TOKEN_IDENT, "")
	if err != nil {
		return nil, err
	}
	stmt.From = table.Literal
	// Where句をパース
	stmt.Where, err = p.parseWhere()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseInsertStatement() (*InsertStatement, error) {
	stmt := &InsertStatement{}
	p.nextToken() // INSERT の次へ進む

	if _, err := p.expect(TOKEN_KEYWORD, "INTO"); err != nil {
		return nil, err
	}
	table, err := p.expect(TOKEN_IDENT, "")
	if err != nil {
		return nil, err
	}
	stmt.TableName = table.Literal

	// カラムリストは省略可能
	if p.currentTokenIs(TOKEN_PUNCTUATION, "(") {
		p.nextToken()
		stmt.Columns, err = p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_PUNCTUATION, ")"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TOKEN_KEYWORD, "VALUES"); err != nil {
		return nil, err
	}
	// (v, v, ...), (v, v, ...) をパース
	for {
		tuple, err := p.parseValueTuple()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, tuple)
		if !p.currentTokenIs(TOKEN_PUNCTUATION, ",") {
			break
		}
		p.nextToken() // COMMA へ
	}
	return stmt, nil
}

// parseValueTuple は ( value, value, ... ) をパースする
func (p *parser) parseValueTuple() ([]*Literal, error) {
	if _, err := p.expect(TOKEN_PUNCTUATION, "("); err != nil {
		return nil, err
	}
	values := []*Literal{}
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !p.currentTokenIs(TOKEN_PUNCTUATION, ",") {
			break
		}
		p.nextToken() // COMMA へ
	}
	if _, err := p.expect(TOKEN_PUNCTUATION, ")"); err != nil {
		return nil, err
	}
	return values, nil
}

// parseValue は INSERT / UPDATE の値をパースする
// 値は識別子・数値・文字列の単一トークンのみ。式は書けない
func (p *parser) parseValue() (*Literal, error) {
	tok, ok := p.currentToken()
	if !ok {
		return nil, p.syntaxError(expectedValue)
	}
	var kind LiteralKind
	switch tok.Type {
	case TOKEN_IDENT:
		kind = LiteralIdentifier
	case TOKEN_NUMBER:
		kind = LiteralNumber
	case TOKEN_STRING:
		kind = LiteralString
	default:
		return nil, p.syntaxError(expectedValue)
	}
	p.nextToken()
	return &Literal{Value: tok.Literal, Kind: kind}, nil
}

// parseIdentifierList は カラム名('id', 'name', 'age' など)のリストをパースする
func (p *parser) parseIdentifierList() ([]string, error) {
	list := []string{}
	for {
		ident, err := p.expect(TOKEN_IDENT, "")
		if err != nil {
			return nil, err
		}
		list = append(list, ident.Literal)
		if !p.currentTokenIs(TOKEN_PUNCTUATION, ",") {
			break
		}
		p.nextToken() // COMMA へ
	}
	return list, nil
}

func (p *parser) parseUpdateStatement() (*UpdateStatement, error) {
	stmt := &UpdateStatement{}
	p.nextToken() // UPDATE の次へ進む

	table, err := p.expect(TOKEN_IDENT, "")
	if err != nil {
		return nil, err
	}
	stmt.TableName = table.Literal
	if _, err := p.expect(TOKEN_KEYWORD, "SET"); err != nil {
		return nil, err
	}

	// SET句をパース
	for {
		column, err := p.expect(TOKEN_IDENT, "")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_OPERATOR, "="); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, Assignment{Column: column.Literal, Value: value})
		// 次が , でなければ終了
		if !p.currentTokenIs(TOKEN_PUNCTUATION, ",") {
			break
		}
		p.nextToken() // COMMA へ
	}

	stmt.Where, err = p.parseWhere()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// DELETE文をパース
func (p *parser) parseDeleteStatement() (*DeleteStatement, error) {
	stmt := &DeleteStatement{}
	p.nextToken() // DELETE の次へ進む

	if _, err := p.expect(TOKEN_KEYWORD, "FROM"); err != nil {
		return nil, err
	}
	table, err := p.expect(TOKEN_IDENT, "")
	if err != nil {
		return nil, err
	}
	stmt.TableName = table.Literal
	stmt.Where, err = p.parseWhere()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// SHOW TABLES をパース
func (p *parser) parseShowStatement() (*ShowTablesStatement, error) {
	p.nextToken() // SHOW の次へ進む
	if _, err := p.expect(TOKEN_KEYWORD, "TABLES"); err != nil {
		return nil, err
	}
	return &ShowTablesStatement{}, nil
}

// parseWhere は省略可能な WHERE 句をパースする
func (p *parser) parseWhere() (Expression, error) {
	if !p.currentTokenIs(TOKEN_KEYWORD, "WHERE") {
		return nil, nil
	}
	p.nextToken() // 条件式へ
	return p.parseExpression()
}
