package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrettyOpts controls human-readable rendering.
type PrettyOpts struct {
	Color bool
	Notes bool
}

type palette struct {
	err, warn, info, loc, note, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan, color.Bold),
		loc:  color.New(color.FgBlue),
		note: color.New(color.FgGreen),
		bold: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.loc, p.note, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s Severity) *color.Color {
	switch s {
	case SevError:
		return p.err
	case SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders each diagnostic of bag as
//
//	error[SEM3001]: type not found: Foo
//	  --> user.idlast: User.address
//	  = note: ...
func Pretty(w io.Writer, bag *Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s%s %s\n",
			sev.Sprintf("%s[%s]", d.Severity.label(), d.Code.ID()),
			p.bold.Sprint(":"),
			p.bold.Sprint(d.Message))
		if loc := d.Location(); loc != "" {
			fmt.Fprintf(w, "  %s %s\n", p.loc.Sprint("-->"), loc)
		}
		if opts.Notes {
			for _, n := range d.Notes {
				msg := n.Msg
				if n.Subject != "" {
					msg = n.Subject + ": " + msg
				}
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("= note:"), msg)
			}
		}
	}
}

// FormatShort renders one line per diagnostic, suitable for golden files
// and for piping into other tools.
func FormatShort(bag *Bag) string {
	if bag == nil || bag.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code.ID(), d.Location(), sanitize(d.Message))
	}
	return b.String()
}

func sanitize(msg string) string {
	msg = strings.ReplaceAll(msg, "\r", " ")
	return strings.ReplaceAll(msg, "\n", " ")
}
