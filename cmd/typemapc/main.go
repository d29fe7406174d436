// Command typemapc loads a ruleset, runs one lookup against it, prints the
// result, and with -debug also dumps the scope stack. Argument handling over
// os.Args follows cmd/funxy/main.go's style rather than the flag
// package, which the teacher codebase never reaches for in its own
// binaries.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/typemap/internal/audit"
	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/ruleset"
	"github.com/funvibe/typemap/internal/tm"
	"github.com/funvibe/typemap/internal/tmconfig"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <rules.yaml> <op> <type> [name]\n", os.Args[0])
}

// useColor reports whether stdout is an interactive terminal, the way
// the teacher's builtins_term.go gates its own color output.
func useColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func main() {
	args := os.Args[1:]
	for len(args) > 0 && args[0] == "-debug" {
		tmconfig.IsDebugMode = true
		args = args[1:]
	}

	if len(args) < 3 {
		usage()
		os.Exit(1)
	}

	rulesPath := args[0]
	op := args[1]
	typ := args[2]
	name := ""
	if len(args) >= 4 {
		name = args[3]
	}

	store := tm.NewStore()
	if err := ruleset.Load(rulesPath, store); err != nil {
		fmt.Fprintf(os.Stderr, "typemapc: loading %s: %v\n", rulesPath, err)
		os.Exit(1)
	}

	var auditLog *audit.Log
	if path := os.Getenv("TYPEMAPC_AUDIT_DB"); path != "" {
		var err error
		auditLog, err = audit.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "typemapc: audit: %v\n", err)
			os.Exit(1)
		}
		defer auditLog.Close()
	}

	code, matched := store.Lookup(op, ctype.T(typ), name, name, "$input", "$1", nil)
	if auditLog != nil {
		_ = auditLog.Record("lookup", fmt.Sprintf("op=%s type=%s name=%s matched=%t", op, typ, name, matched))
	}

	heading := "no match"
	if matched {
		heading = "matched"
	}
	if useColor() {
		fmt.Printf("\x1b[1m%s\x1b[0m: %s(%s %s)\n", heading, op, typ, name)
	} else {
		fmt.Printf("%s: %s(%s %s)\n", heading, op, typ, name)
	}
	if matched {
		fmt.Println(code)
	}

	if tmconfig.IsDebugMode {
		fmt.Println("--- store dump ---")
		store.Debug(os.Stdout)
	}
}
