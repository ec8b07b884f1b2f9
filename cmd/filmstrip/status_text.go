package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"filmstrip/internal/renderlog"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// statusLabel renders a job status, colorized when the writer is a terminal.
func statusLabel(writer io.Writer, status renderlog.Status) string {
	label := string(status)
	if !shouldColorize(writer) {
		return label
	}
	switch status {
	case renderlog.StatusCompleted:
		return text.FgGreen.Sprint(label)
	case renderlog.StatusFailed:
		return text.FgRed.Sprint(label)
	case renderlog.StatusRunning:
		return text.FgYellow.Sprint(label)
	default:
		return label
	}
}
