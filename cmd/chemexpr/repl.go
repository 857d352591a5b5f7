package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/peterh/liner"

	"github.com/zephyrtronium/chemexpr"
)

const (
	historyFile = ".chemexpr_history"
	promptMain  = "> "
	promptCont  = ". "
)

// repl evaluates lines interactively until EOF or :quit.
func (e *env) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			glog.Warningf("saving history: %v", err)
		}
	}()

	for {
		src, ok := e.readUnit(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		case ":names":
			fmt.Println(strings.Join(e.session.Dictionary().Names(), " "))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		e.exec(src)
	}
}

// readUnit reads lines until they form a complete expression or fail to
// parse for some reason other than ending too early.
func (e *env) readUnit(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			glog.Errorf("reading input: %v", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !incomplete(e.session, src) {
			return src, true
		}
	}
}

// incomplete reports whether src is a prefix of an expression or assignment
// that needs more input. An empty line is never incomplete.
func incomplete(s *chemexpr.Session, src string) bool {
	if _, rest, ok := chemexpr.SplitAssignment(src); ok {
		src = rest
	}
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := s.Parse(src)
	var want *chemexpr.ExpectedTokensError
	return errors.As(err, &want)
}
