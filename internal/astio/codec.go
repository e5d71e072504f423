// Package astio reads and writes parsed IDL syntax trees. The parser runs
// out of process and hands trees to idlc in one of two encodings: msgpack
// (".idlast", the default) or JSON (".json").
package astio

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"idlc/internal/ast"
)

// Format selects the tree encoding.
type Format uint8

const (
	FormatMsgpack Format = iota
	FormatJSON
)

// Tree file extensions.
const (
	ExtMsgpack = ".idlast"
	ExtJSON    = ".json"
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "msgpack"
}

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ExtJSON) {
		return FormatJSON
	}
	return FormatMsgpack
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "msgpack", "idlast", "mp":
		return FormatMsgpack, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatMsgpack, fmt.Errorf("unknown tree format %q (expected msgpack|json)", s)
}

// Decode reads one document. Includes without an inlined document are left
// with a nil Doc for the Loader to fill in.
func Decode(r io.Reader, format Format) (*ast.Document, error) {
	var w wireDocument
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&w)
	default:
		err = msgpack.NewDecoder(r).Decode(&w)
	}
	if err != nil {
		return nil, &DecodeError{Msg: fmt.Sprintf("decode %s: %v", format, err)}
	}
	return fromWire(&w)
}

// Encode writes doc, inlining the documents of its includes.
func Encode(w io.Writer, doc *ast.Document, format Format) error {
	wd, err := toWire(doc)
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wd)
	default:
		enc := msgpack.NewEncoder(w)
		enc.SetOmitEmpty(true)
		return enc.Encode(wd)
	}
}
