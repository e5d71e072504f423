package diag

import (
	"encoding/json"
	"io"
)

// NoteJSON is a note in the JSON output.
type NoteJSON struct {
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// DiagnosticJSON is one diagnostic in the JSON output.
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	File     string     `json:"file,omitempty"`
	Subject  string     `json:"subject,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// Output is the root of the JSON output.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	HasErrors   bool             `json:"has_errors"`
}

// BuildOutput converts bag without serializing it. Notes are kept only
// when withNotes is set.
func BuildOutput(bag *Bag, withNotes bool) Output {
	if bag == nil {
		return Output{Diagnostics: []DiagnosticJSON{}}
	}
	out := Output{Diagnostics: make([]DiagnosticJSON, 0, bag.Len())}
	for _, d := range bag.Items() {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			File:     d.File,
			Subject:  d.Subject,
		}
		if withNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for i, n := range d.Notes {
				dj.Notes[i] = NoteJSON{Subject: n.Subject, Message: n.Msg}
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	out.HasErrors = bag.HasErrors()
	return out
}

// WriteJSON writes bag as indented JSON.
func WriteJSON(w io.Writer, bag *Bag, withNotes bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(bag, withNotes))
}
