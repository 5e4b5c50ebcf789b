package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/takeuchi-shogo/go-example-memsql/internal/executor"
	"github.com/takeuchi-shogo/go-example-memsql/internal/parser"
)

var (
	ErrSessionClosed = errors.New("session is closed")
	ErrNilStatement  = errors.New("statement is nil")
)

type Session interface {
	// ID はセッションの識別子を返す
	ID() string
	// Compile はクエリを AST に変換する (Store には触れない)
	Compile(sqlQuery string) (parser.Statement, error)
	// Run は AST を Store に対して実行する
	Run(stmt parser.Statement) (executor.ResultSet, error)
	// Execute は Compile と Run を1つの排他区間で行う
	Execute(sqlQuery string) (executor.ResultSet, error)
	Close() error
}

// session は1つの Store に対する実行を直列化する
// コア (parser / executor) は並行実行を想定していないので、ここで1文ずつに絞る
type session struct {
	id       uuid.UUID
	executor executor.Executor
	logger   *log.Logger
	lock     sync.Mutex
	closed   bool
}

func NewSession(executor executor.Executor, logger *log.Logger) Session {
	return &session{
		id:       uuid.New(),
		executor: executor,
		logger:   logger,
	}
}

func (s *session) ID() string {
	return s.id.String()
}

func (s *session) Compile(sqlQuery string) (parser.Statement, error) {
	return parser.Compile(sqlQuery)
}

func (s *session) Run(stmt parser.Statement) (executor.ResultSet, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if stmt == nil {
		return nil, ErrNilStatement
	}
	return s.run(stmt.String(), stmt)
}

func (s *session) Execute(sqlQuery string) (executor.ResultSet, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	// 1. クエリを AST に変換
	stmt, err := parser.Compile(sqlQuery)
	if err != nil {
		s.logger.Printf("session=%s compile error: %v", s.id, err)
		return nil, err
	}
	// 2. AST を実行して結果を返す
	return s.run(sqlQuery, stmt)
}

// run はロックを保持した状態で呼ぶこと
func (s *session) run(query string, stmt parser.Statement) (executor.ResultSet, error) {
	start := time.Now()
	result, err := s.executor.Execute(stmt)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Printf("session=%s query=%q error: %v (%s)", s.id, query, err, elapsed)
		return nil, err
	}
	s.logger.Printf("session=%s query=%q ok: %s (%s)", s.id, query, result, elapsed)
	return result, nil
}

func (s *session) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.logger.Printf("session=%s closed", s.id)
	return nil
}
