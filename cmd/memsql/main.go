package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/takeuchi-shogo/go-example-memsql/internal/catalog"
	"github.com/takeuchi-shogo/go-example-memsql/internal/executor"
	"github.com/takeuchi-shogo/go-example-memsql/internal/session"
	"github.com/takeuchi-shogo/go-example-memsql/pkg/repl"
)

func main() {
	sample := flag.Bool("sample", true, "load the sample tables (users, products, logs)")
	history := flag.String("history", "", "file to keep the REPL history in")
	verbose := flag.Bool("verbose", false, "log every executed query to stderr")
	flag.Parse()

	logger := log.New(io.Discard, "memsql ", log.LstdFlags)
	if *verbose {
		logger.SetOutput(os.Stderr)
	}

	// カタログを作成
	var store catalog.Catalog
	if *sample {
		store = catalog.NewSampleCatalog()
	} else {
		store = catalog.NewCatalog()
	}

	// Executor と Session を作成
	executor := executor.NewExecutor(store)
	session := session.NewSession(executor, logger)
	defer session.Close()

	reader, err := repl.NewReadlineReader(repl.PROMPT, *history)
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}

	// REPL を起動
	repl.NewRepl(reader, os.Stdout, session).Run()
}
