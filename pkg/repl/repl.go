package repl

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"

	"github.com/takeuchi-shogo/go-example-memsql/internal/executor"
	"github.com/takeuchi-shogo/go-example-memsql/internal/parser"
	"github.com/takeuchi-shogo/go-example-memsql/internal/session"
	"github.com/takeuchi-shogo/go-example-memsql/internal/storage"
)

const (
	PROMPT  = "memsql> "
	VERSION = "0.1.0"
)

type Repl struct {
	reader  LineReader
	output  io.Writer
	session session.Session
}

func NewRepl(reader LineReader, output io.Writer, session session.Session) *Repl {
	return &Repl{reader: reader, output: output, session: session}
}

// Run は入力が終わるか .exit が入力されるまでループする
func (r *Repl) Run() {
	defer r.reader.Close()

	r.printWelcome()

	for {
		line, err := r.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C は入力中の行を捨てるだけ
			continue
		}
		if err != nil {
			r.printGoodBye()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := r.executeCommand(line); quit {
			r.printGoodBye()
			return
		}
	}
}

func (r *Repl) printWelcome() {
	fmt.Fprintf(r.output, "Welcome to memsql v%s\n", VERSION)
	fmt.Fprintln(r.output, "Type \".help\" for usage hints, \".exit\" to quit.")
	fmt.Fprintln(r.output)
}

// executeCommand は1行を処理する。終了する場合 true を返す
func (r *Repl) executeCommand(line string) bool {
	if strings.HasPrefix(line, ".") {
		return r.handleCommand(line)
	}
	// コマンドがない場合はSQLを評価
	r.eval(line)
	return false
}

func (r *Repl) handleCommand(line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch command {
	case ".exit", ".quit":
		return true
	case ".help", ".h":
		r.printHelp()
	case ".tables":
		r.eval("SHOW TABLES")
	case ".ast":
		r.printAST(arg)
	case ".tokens":
		r.printTokens(arg)
	default:
		r.print("Unknown command: %s (type .help)", command)
	}
	return false
}

func (r *Repl) printHelp() {
	r.print("Commands:")
	r.print("  .help, .h        Show this help")
	r.print("  .tables          List tables")
	r.print("  .ast <query>     Show the syntax tree of a query")
	r.print("  .tokens <query>  Show the tokens of a query")
	r.print("  .exit, .quit     Exit the REPL")
	r.print("  Ctrl+D           Exit the REPL (EOF)")
	r.print("SQL Statements:")
	r.print("  SELECT cols FROM t [WHERE expr]")
	r.print("  INSERT INTO t [(cols)] VALUES (v, ...)[, (v, ...)]")
	r.print("  UPDATE t SET col = v[, ...] [WHERE expr]")
	r.print("  DELETE FROM t WHERE expr")
	r.print("  SHOW TABLES")
}

func (r *Repl) print(s string, args ...interface{}) {
	fmt.Fprintf(r.output, s+"\n", args...)
}

func (r *Repl) printError(err error) {
	fmt.Fprintln(r.output, "Error:", err)
}

func (r *Repl) eval(input string) {
	result, err := r.session.Execute(input)
	if err != nil {
		r.printError(err)
		return
	}
	switch result.Kind() {
	case executor.ResultRowSet:
		r.printRowSet(result)
	default:
		fmt.Fprintln(r.output, result.GetMessage())
	}
}

// printRowSet は結果をテーブル形式で表示する
func (r *Repl) printRowSet(result executor.ResultSet) {
	columns := result.GetColumns()
	table := tablewriter.NewWriter(r.output)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range result.GetRows() {
		values := row.Values(columns)
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = storage.Format(v)
		}
		table.Append(cells)
	}
	table.Render()
	r.print("(%d row(s))", result.GetRowCount())
}

func (r *Repl) printAST(query string) {
	stmt, err := r.session.Compile(query)
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintln(r.output, parser.FormatAST(stmt))
}

func (r *Repl) printTokens(query string) {
	tokens, err := parser.Tokenize(query)
	if err != nil {
		r.printError(err)
		return
	}
	table := tablewriter.NewWriter(r.output)
	table.SetHeader([]string{"Pos", "Type", "Literal"})
	table.SetAutoFormatHeaders(false)
	for _, tok := range tokens {
		table.Append([]string{strconv.Itoa(tok.Pos), tok.Type.String(), tok.Literal})
	}
	table.Render()
}

var goodbyeMessages = []string{
	"See you later! 👋",
	"Goodbye! Thanks for using memsql.",
	"Bye! Happy coding!",
}

func (r *Repl) printGoodBye() {
	// NOTE:
	// Go 1.20+ では math/rand の rand.Seed は非推奨。
	// ここではローカルな RNG を作って、終了メッセージの選択だけに利用する。
	randomGenerator := rand.New(rand.NewSource(time.Now().UnixNano()))
	fmt.Fprintln(r.output, goodbyeMessages[randomGenerator.Intn(len(goodbyeMessages))])
}
