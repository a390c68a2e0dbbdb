// Command typecheck loads a YAML environment manifest and a term written
// in the debug s-expression syntax (internal/pretty), then runs scTypeCheck
// against it, printing the inferred type or the error taxonomy to stdout/
// stderr — the CLI front-end named in SPEC_FULL.md §A.4. Each invocation
// gets its own correlation ID (github.com/google/uuid), echoed on every
// diagnostic line the way the retrieval pack's CLI front-ends stamp
// request-scoped identifiers onto their output.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/vellum-lang/vellum/internal/config"
	"github.com/vellum-lang/vellum/internal/engine"
	"github.com/vellum-lang/vellum/internal/env"
	"github.com/vellum-lang/vellum/internal/pretty"
	"github.com/vellum-lang/vellum/internal/term"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <manifest%s> <term%s>\n", os.Args[0], config.ManifestFileExt, config.TermFileExt)
		os.Exit(1)
	}

	correlation := uuid.New().String()
	useColor := pretty.StdoutIsTerminal()

	manifestPath, termPath := os.Args[1], os.Args[2]

	manifestFile, err := os.Open(manifestPath)
	if err != nil {
		fail(correlation, err)
	}
	defer manifestFile.Close()

	f := term.NewFactory()
	e, err := env.LoadManifest(f, manifestFile)
	if err != nil {
		fail(correlation, fmt.Errorf("loading manifest: %w", err))
	}

	termSrc, err := os.ReadFile(termPath)
	if err != nil {
		fail(correlation, err)
	}

	t, err := pretty.Parse(f, string(termSrc))
	if err != nil {
		fail(correlation, fmt.Errorf("parsing term: %w", err))
	}

	ty, err := engine.ScTypeCheck(f, e, config.DefaultGlobalModule, t)
	if err != nil {
		fail(correlation, err)
	}

	fmt.Printf("correlation=%s %s\n", correlation, pretty.Ok("OK", useColor))
	fmt.Println(pretty.Sprint(ty))
}

func fail(correlation string, err error) {
	useColor := pretty.StdoutIsTerminal()
	fmt.Fprintf(os.Stderr, "correlation=%s %s err=%s\n", correlation, pretty.Fail("FAIL", useColor), err)
	os.Exit(1)
}
