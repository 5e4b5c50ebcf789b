package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery はトークンが1つもないクエリ
var ErrEmptyQuery = errors.New("empty query")

// LexicalError は字句として認識できない文字
type LexicalError struct {
	Char rune
	Pos  int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// UnterminatedStringError は閉じられていない文字列リテラル
// Pos は開始の ' の位置
type UnterminatedStringError struct {
	Pos int
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string literal starting at position %d", e.Pos)
}

// SyntaxError は期待したトークンと実際のトークンの不一致
// 入力の終端に達した場合 Found は "end of input", Pos は -1
type SyntaxError struct {
	Expected string
	Found    string
	Pos      int
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("syntax error: expected %s, found %s", e.Expected, e.Found)
	}
	return fmt.Sprintf("syntax error at position %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// UnsupportedCommandError は SELECT / INSERT / UPDATE / DELETE / SHOW 以外で始まる文
type UnsupportedCommandError struct {
	Token Token
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported command %q at position %d", e.Token.Literal, e.Token.Pos)
}

const endOfInput = "end of input"

// 単一トークンでなく候補から選ぶ位置での Expected
const (
	expectedValue      = "IDENTIFIER, NUMBER or STRING"
	expectedExpression = `IDENTIFIER, NUMBER, STRING or PUNCTUATION "("`
)

// describeExpected は期待するトークンを説明する文字列を返す
func describeExpected(tokenType TokenType, literal string) string {
	if literal == "" {
		return tokenType.String()
	}
	return fmt.Sprintf("%s %q", tokenType, literal)
}

// describeToken は実際に見つかったトークンを説明する文字列を返す
func describeToken(tok Token) string {
	return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
}
