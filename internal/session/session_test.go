package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/takeuchi-shogo/go-example-memsql/internal/catalog"
	"github.com/takeuchi-shogo/go-example-memsql/internal/executor"
	"github.com/takeuchi-shogo/go-example-memsql/internal/parser"
)

func setupTestSession(t *testing.T) (Session, catalog.Catalog) {
	t.Helper()
	cat := catalog.NewSampleCatalog()
	sess := NewSession(executor.NewExecutor(cat), log.New(io.Discard, "", 0))
	t.Cleanup(func() { sess.Close() })
	return sess, cat
}

func TestSessionID(t *testing.T) {
	sess, _ := setupTestSession(t)

	if _, err := uuid.Parse(sess.ID()); err != nil {
		t.Errorf("ID() = %q is not a UUID: %v", sess.ID(), err)
	}
	other, _ := setupTestSession(t)
	if sess.ID() == other.ID() {
		t.Error("sessions should have distinct IDs")
	}
}

func TestSessionSelect(t *testing.T) {
	sess, _ := setupTestSession(t)

	result, err := sess.Execute("SELECT * FROM users")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if result.GetRowCount() != 2 {
		t.Errorf("Expected 2 rows, got %d", result.GetRowCount())
	}
}

func TestSessionInsertThenSelect(t *testing.T) {
	sess, _ := setupTestSession(t)

	result, err := sess.Execute("INSERT INTO users (id, name, email) VALUES (3, 'Charlie', 'charlie@example.com');")
	if err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}
	if msg := result.GetMessage(); msg != "1 row(s) inserted into users" {
		t.Errorf("Expected message '1 row(s) inserted into users', got '%s'", msg)
	}

	result, err = sess.Execute("SELECT name FROM users WHERE id = 3")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if result.GetRowCount() != 1 {
		t.Errorf("Expected 1 row, got %d", result.GetRowCount())
	}
}

func TestSessionCompileAndRun(t *testing.T) {
	sess, cat := setupTestSession(t)

	stmt, err := sess.Compile("DELETE FROM users WHERE name = 'Bob'")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	// Compile だけでは Store は変わらない
	if users, _ := cat.GetTable("users"); len(users) != 2 {
		t.Fatalf("Expected 2 users before Run, got %d", len(users))
	}

	result, err := sess.Run(stmt)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.GetAffectedCount() != 1 {
		t.Errorf("Expected affected 1, got %d", result.GetAffectedCount())
	}
}

func TestSessionRunNilStatement(t *testing.T) {
	sess, _ := setupTestSession(t)

	result, err := sess.Run(nil)
	if !errors.Is(err, ErrNilStatement) {
		t.Errorf("Expected ErrNilStatement, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected no result, got %v", result)
	}
	// セッションはそのまま使える
	if _, err := sess.Execute("SHOW TABLES"); err != nil {
		t.Errorf("SHOW TABLES after nil Run failed: %v", err)
	}
}

func TestSessionErrorsPropagate(t *testing.T) {
	sess, _ := setupTestSession(t)

	_, err := sess.Execute("SELEKT * FROM users;")
	var cmdErr *parser.UnsupportedCommandError
	if !errors.As(err, &cmdErr) {
		t.Errorf("Expected UnsupportedCommandError, got %v", err)
	}

	_, err = sess.Execute("SELECT * FROM logs")
	if err == nil || !strings.Contains(err.Error(), "cannot infer columns") {
		t.Errorf("Expected cannot infer columns error, got %v", err)
	}

	_, err = sess.Execute("UPDATE nope SET a = 1")
	var notFound *executor.TableNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected TableNotFoundError, got %v", err)
	}
}

func TestSessionLogsQueries(t *testing.T) {
	var buf bytes.Buffer
	cat := catalog.NewSampleCatalog()
	sess := NewSession(executor.NewExecutor(cat), log.New(&buf, "", 0))

	if _, err := sess.Execute("SHOW TABLES"); err != nil {
		t.Fatalf("SHOW TABLES failed: %v", err)
	}
	sess.Execute("SELECT * FROM")

	out := buf.String()
	if !strings.Contains(out, "session="+sess.ID()) {
		t.Errorf("log should contain session id, got %q", out)
	}
	if !strings.Contains(out, `query="SHOW TABLES" ok`) {
		t.Errorf("log should contain successful query, got %q", out)
	}
	if !strings.Contains(out, "compile error") {
		t.Errorf("log should contain compile error, got %q", out)
	}
}

func TestSessionClose(t *testing.T) {
	cat := catalog.NewSampleCatalog()
	sess := NewSession(executor.NewExecutor(cat), log.New(io.Discard, "", 0))

	if err := sess.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := sess.Execute("SHOW TABLES"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Expected ErrSessionClosed, got %v", err)
	}
	if err := sess.Close(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Expected ErrSessionClosed on second Close, got %v", err)
	}
}

func TestSessionSerializesConcurrentExecutions(t *testing.T) {
	sess, cat := setupTestSession(t)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			query := fmt.Sprintf("INSERT INTO users (id, name, email) VALUES (%d, 'user%d', 'u%d@example.com')", 100+i, i, i)
			if _, err := sess.Execute(query); err != nil {
				t.Errorf("INSERT failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	users, _ := cat.GetTable("users")
	if len(users) != 2+workers {
		t.Errorf("Expected %d users, got %d", 2+workers, len(users))
	}
}
