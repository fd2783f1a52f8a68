package main

import (
	"fmt"
	"io"

	"github.com/MegaSamuel/mython/lexer"
)

// DumpTokens tokenizes the source read from r and writes the stream to w,
// one token per line. The parser and evaluator sit outside this module, so
// the binary's whole job is showing what they would consume.
func DumpTokens(w io.Writer, r io.Reader) error {
	l, err := lexer.New(r)
	if err != nil {
		return fmt.Errorf("lex: %w", err)
	}

	for _, tok := range l.Tokens() {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}

	return nil
}
