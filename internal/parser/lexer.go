package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof rune = 0

type lexer struct {
	input        string // 入力文字列
	position     int    // 現在の位置
	readPosition int    // 次の位置
	ch           rune   // 現在の文字
	err          error  // 最初に発生したエラー
}

// NewLexer は新しい Lexer を作成する
// SQL 文字列をトークン（単語）に分割する役割を担う
func NewLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

// Tokenize はソース文字列をトークン列に変換する
// 最初の不正な文字・閉じられていない文字列で停止し、回復はしない
func Tokenize(source string) ([]Token, error) {
	l := NewLexer(source)
	tokens := []Token{}
	for {
		tok := l.nextToken()
		switch tok.Type {
		case TOKEN_EOF:
			return tokens, nil
		case TOKEN_ERROR:
			return nil, l.err
		}
		tokens = append(tokens, tok)
	}
}

// readChar は1文字読み込む
func (l *lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = eof
		return
	}
	ch, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = ch
	l.readPosition += width
}

// peekChar は次の文字を見る（位置は進まない）
func (l *lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	ch, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return ch
}

func (l *lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// nextToken は次のトークンを読み込む
func (l *lexer) nextToken() Token {
	l.skipWhitespace() // 空白をスキップ

	start := l.position
	if l.atEnd() {
		return newToken(TOKEN_EOF, "", start)
	}

	switch {
	case unicode.IsLetter(l.ch):
		tokenType, literal := LookupIdent(l.readIdentifier())
		return newToken(tokenType, literal, start)
	case isDigit(l.ch):
		return newToken(TOKEN_NUMBER, l.readNumber(), start)
	case l.ch == '\'':
		literal, ok := l.readString()
		if !ok {
			l.err = &UnterminatedStringError{Pos: start}
			return newToken(TOKEN_ERROR, l.input[start:], start)
		}
		return newToken(TOKEN_STRING, literal, start)
	case isOperatorChar(l.ch):
		return newToken(TOKEN_OPERATOR, l.readOperator(), start)
	case isPunctuation(l.ch):
		ch := l.ch
		l.readChar()
		return newToken(TOKEN_PUNCTUATION, string(ch), start)
	default:
		l.err = &LexicalError{Char: l.ch, Pos: start}
		return newToken(TOKEN_ERROR, string(l.ch), start)
	}
}

// skipWhitespace は空白をスキップする
func (l *lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readIdentifier は識別子を読み込む
// 先頭は英字、以降は英数字とアンダースコア
func (l *lexer) readIdentifier() string {
	position := l.position
	for !l.atEnd() && (unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber は数字を読み込む
// 小数点は1つまで。2つ目の小数点は消費せずに残す
func (l *lexer) readNumber() string {
	position := l.position
	seenDot := false
	for !l.atEnd() {
		if isDigit(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '.' && !seenDot {
			seenDot = true
			l.readChar()
			continue
		}
		break
	}
	return l.input[position:l.position]
}

// readString は文字列を読み込む
// '' はエスケープされた ' として扱う
func (l *lexer) readString() (string, bool) {
	l.readChar() // 開始の ' をスキップ
	var sb strings.Builder
	for !l.atEnd() {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // 終了の ' をスキップ
			return sb.String(), true
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return "", false
}

// readOperator は最長一致で演算子を読み込む
func (l *lexer) readOperator() string {
	rest := l.input[l.position:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.readChar()
			}
			return op
		}
	}
	// isOperatorChar を通過していればここには来ない
	ch := l.ch
	l.readChar()
	return string(ch)
}

// isDigit は文字が数字かを判定する
// ch: 文字
// return: 数字か
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Detokenize はトークン列を空白区切りの文字列に戻す
// 文字列リテラルは '' エスケープ付きで引用し直す
func Detokenize(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok.Type == TOKEN_STRING {
			parts[i] = quoteString(tok.Literal)
			continue
		}
		parts[i] = tok.Literal
	}
	return strings.Join(parts, " ")
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
