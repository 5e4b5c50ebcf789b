package repl

import (
	"bufio"
	"io"

	"github.com/chzyer/readline"
)

// LineReader は REPL に1行ずつ入力を渡す
// 入力の終わりでは io.EOF を返す
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// NewReadlineReader は行編集と履歴を持つ端末用の LineReader を作る
// historyFile が空なら履歴は保存しない
func NewReadlineReader(prompt, historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// scannerReader はパイプやテスト用の LineReader
type scannerReader struct {
	scanner *bufio.Scanner // 入力をスキャンする
	output  io.Writer
	prompt  string
}

// NewScannerReader は io.Reader から行を読む LineReader を作る
// prompt は各行の読み込み前に output に書かれる
func NewScannerReader(input io.Reader, output io.Writer, prompt string) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(input), output: output, prompt: prompt}
}

func (r *scannerReader) Readline() (string, error) {
	if r.prompt != "" {
		io.WriteString(r.output, r.prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scannerReader) Close() error {
	return nil
}
