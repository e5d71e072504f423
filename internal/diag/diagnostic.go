package diag

import "strings"

// Note is additional context attached to a diagnostic.
type Note struct {
	Subject string
	Msg     string
}

// Diagnostic is one reported problem. Input trees carry no source
// positions, so a diagnostic is located by file and by Subject, the dotted
// path of the definition (and member) it concerns.
type Diagnostic struct {
	Severity Severity
	Code     Code
	File     string
	Subject  string
	Message  string
	Notes    []Note
}

func New(sev Severity, code Code, file, subject, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		File:     file,
		Subject:  subject,
		Message:  msg,
	}
}

func NewError(code Code, file, subject, msg string) Diagnostic {
	return New(SevError, code, file, subject, msg)
}

func (d Diagnostic) WithNote(subject, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Subject: subject, Msg: msg})
	return d
}

// Location renders "file: subject", omitting empty parts.
func (d Diagnostic) Location() string {
	parts := make([]string, 0, 2)
	if d.File != "" {
		parts = append(parts, d.File)
	}
	if d.Subject != "" {
		parts = append(parts, d.Subject)
	}
	return strings.Join(parts, ": ")
}
