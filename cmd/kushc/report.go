package main

import (
	"fmt"

	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/token"
	"github.com/dekarrin/rosed"
)

// printReport renders every accumulated diagnostic as a table, following
// the teacher's pattern of building [][]string rows and handing them to
// rosed's InsertTableOpts.
func printReport(sink *diag.Sink, files *token.Files, wrap int) {
	diags := sink.SortedByLocation()
	if len(diags) == 0 {
		fmt.Println("no diagnostics")
		return
	}

	data := [][]string{{"PHASE", "LOCATION", "CODE", "MESSAGE"}}
	for _, d := range diags {
		loc := fmt.Sprintf("%s:%d:%d", files.Name(d.Span.File), d.Span.StartLine, d.Span.StartCol)
		data = append(data, []string{d.Phase.String(), loc, string(d.Code), d.Message})
	}

	out := rosed.
		Edit("").
		InsertTableOpts(0, data, wrap, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	fmt.Println(out)
	fmt.Printf("%d diagnostic(s)\n", len(diags))
}
