/*
Kushc compiles KUSH source files through the front-end: lexing, parsing,
and two-pass semantic analysis, then prints any accumulated diagnostics.

Usage:

	kushc [flags] file...

The flags are:

	-v, --version
		Give the current version of kushc and then exit.

	-c, --config FILE
		Load settings from the given TOML file. Defaults to "kushc.toml" in
		the current working directory if present.

	--core
		Treat the given files as the core library, suppressing the implicit
		import of KUSH.core.KUSHKernel.

No code is generated; this driver exists to exercise the front-end
end-to-end and report diagnostics in a readable form.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/internal/util"
	"github.com/dekarrin/kushc/internal/version"
	"github.com/dekarrin/kushc/lex"
	"github.com/dekarrin/kushc/parse"
	"github.com/dekarrin/kushc/scope"
	"github.com/dekarrin/kushc/sema"
	"github.com/dekarrin/kushc/stream"
	"github.com/dekarrin/kushc/token"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitDiagnostics
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagConfig  *string = pflag.StringP("config", "c", "kushc.toml", "TOML settings file")
	flagCore    *bool   = pflag.Bool("core", false, "Treat the given files as the core library")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := LoadConfig(*flagConfig, pflag.Lookup("config").Changed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kushc: %v\n", err)
		returnCode = ExitInitError
		return
	}
	if *flagCore {
		cfg.Core = true
	}

	paths := pflag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "kushc: no input files")
		returnCode = ExitInitError
		return
	}

	batchID := uuid.New()
	files := token.NewFiles()
	sink := diag.NewSink()
	registry := scope.NewRegistry()
	annos := sema.NewAnnotations()

	units := make([]*ast.CompilationUnit, 0, len(paths))
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kushc: %v\n", err)
			returnCode = ExitInitError
			return
		}
		fid := files.Register(path)
		lexer := lex.New(src, fid, sink)
		ts := stream.New(lexer)
		p := parse.New(ts, sink, path, fid)
		units = append(units, p.Parse())
	}

	for _, u := range units {
		sema.NewDefinitionPass(sink, annos, registry).Run(u)
	}
	for _, u := range units {
		sema.NewResolutionPass(sink, annos, registry, cfg.Core).Run(u)
	}

	fmt.Printf("batch %s: compiled %s\n", batchID, util.MakeTextList(paths))
	printReport(sink, files, cfg.ReportWrap)
	if sink.HasErrors() {
		returnCode = ExitDiagnostics
	}
}
