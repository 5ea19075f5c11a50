package main

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

const progressTemplate = `{{ blue "Blocks" }} {{ printf "%3d/%3d" .Current .Total }} {{ bar . "[" "=" ">" " " "]" | blue }} {{ green (percent .) }}`

// newProgressBar returns a started bar counting total blocks, or nil when
// w is not a terminal.
func newProgressBar(w io.Writer, total int) *pb.ProgressBar {
	if total <= 0 || !isTerminal(w) {
		return nil
	}

	bar := pb.ProgressBarTemplate(progressTemplate).New(total)
	bar.Set(pb.Bytes, false)
	bar.SetMaxWidth(100)
	bar.SetWriter(w)
	return bar.Start()
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
