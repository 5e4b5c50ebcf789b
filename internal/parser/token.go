package parser

import "strings"

type TokenType int

const (
	// 特殊トークン
	TOKEN_ERROR TokenType = iota // 不正な文字
	TOKEN_EOF

	TOKEN_KEYWORD     // SELECT, FROM, WHERE, etc.
	TOKEN_IDENT       // id, name, users, etc.
	TOKEN_STRING      // 'hello', 'it''s', etc.
	TOKEN_NUMBER      // 123, 4.56, etc.
	TOKEN_OPERATOR    // =, <>, <=, +, *, etc.
	TOKEN_PUNCTUATION // ( ) , ;
)

func (t TokenType) String() string {
	switch t {
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_KEYWORD:
		return "KEYWORD"
	case TOKEN_IDENT:
		return "IDENTIFIER"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_NUMBER:
		return "NUMBER"
	case TOKEN_OPERATOR:
		return "OPERATOR"
	case TOKEN_PUNCTUATION:
		return "PUNCTUATION"
	default:
		return "UNKNOWN"
	}
}

// Token は字句解析の最小単位
// Pos はソース文字列中の開始位置 (バイトオフセット, 0 始まり)
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func newToken(tokenType TokenType, literal string, pos int) Token {
	return Token{Type: tokenType, Literal: literal, Pos: pos}
}

// Is はトークンの種類とリテラルが一致するかを返す
// literal が空なら種類だけを比較する
func (t Token) Is(tokenType TokenType, literal string) bool {
	if t.Type != tokenType {
		return false
	}
	return literal == "" || t.Literal == literal
}

// CREATE / ALTER などはキーワードとして認識されるが構文としてはサポートしない
var keywords = map[string]struct{}{
	// DML
	"SELECT": {},
	"FROM":   {},
	"WHERE":  {},
	"INSERT": {},
	"INTO":   {},
	"VALUES": {},
	"UPDATE": {},
	"SET":    {},
	"DELETE": {},
	// 論理演算子・修飾子
	"AND":  {},
	"OR":   {},
	"NOT":  {},
	"NULL": {},
	// DDL
	"CREATE":     {},
	"TABLE":      {},
	"DROP":       {},
	"ALTER":      {},
	"INDEX":      {},
	"PRIMARY":    {},
	"KEY":        {},
	"FOREIGN":    {},
	"REFERENCES": {},
	"DEFAULT":    {},
	"CONSTRAINT": {},
	// その他
	"SHOW":   {},
	"TABLES": {},
}

// LookupIdent は識別子をトークン種別に変換する
// キーワードなら大文字化したリテラルを、それ以外は元の文字列を返す
func LookupIdent(ident string) (TokenType, string) {
	upper := strings.ToUpper(ident)
	if _, ok := keywords[upper]; ok {
		return TOKEN_KEYWORD, upper
	}
	return TOKEN_IDENT, ident
}

// operators は最長一致のため 2 文字の演算子を先に並べる
var operators = []string{"<=", ">=", "<>", "=", "<", ">", "+", "-", "*", "/", "%"}

func isOperatorChar(ch rune) bool {
	return strings.ContainsRune("=<>+-*/%", ch)
}

func isPunctuation(ch rune) bool {
	return ch == '(' || ch == ')' || ch == ',' || ch == ';'
}
