package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/messages"
)

// reporter prints installer events as plain lines. Status lines carry the
// latest percentage; detail lines are indented and hidden in quiet mode.
type reporter struct {
	out     io.Writer
	quiet   bool
	percent int
	final   installer.Event
}

func newReporter(out io.Writer, quiet bool) *reporter {
	return &reporter{out: out, quiet: quiet}
}

func (r *reporter) Emit(e installer.Event) {
	switch e.Kind {
	case installer.EventProgress:
		r.percent = e.Percent
	case installer.EventStatus:
		prefix := fmt.Sprintf(messages.ReporterProgressFmt, r.percent)
		_, _ = fmt.Fprint(r.out, color.New(color.Faint).Sprint(prefix))
		_, _ = fmt.Fprint(r.out, color.New(color.Bold, color.FgCyan).Sprintf(messages.ReporterStatusFmt, e.Text))
	case installer.EventDetail:
		if !r.quiet {
			_, _ = fmt.Fprintf(r.out, messages.ReporterDetailFmt, e.Text)
		}
	case installer.EventCompleted:
		r.final = e
		_, _ = fmt.Fprintln(r.out, color.GreenString(messages.ReporterCompleted))
		_, _ = fmt.Fprintln(r.out, messages.ReporterNextStep)
	case installer.EventFailed:
		r.final = e
		_, _ = fmt.Fprint(r.out, color.RedString(messages.ReporterFailedFmt, e.Text))
	}
}
