package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Семантические: ошибки разрешения ссылок
	SemaInfo            Code = 3000
	SemaTypeNotFound    Code = 3001
	SemaUndefinedSymbol Code = 3002
	SemaTypeMismatch    Code = 3003
	SemaDanglingRef     Code = 3004

	// I/O
	IOLoadFileError   Code = 4001
	IODecodeError     Code = 4002
	IOIncludeNotFound Code = 4003
	IOIncludeCycle    Code = 4004

	// Проект
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001
	ProjNoInputs        Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	SemaInfo:            "Semantic information",
	SemaTypeNotFound:    "Type not found",
	SemaUndefinedSymbol: "Undefined symbol",
	SemaTypeMismatch:    "Type mismatch",
	SemaDanglingRef:     "Unresolved reference survived resolution",
	IOLoadFileError:     "I/O load file error",
	IODecodeError:       "Malformed syntax tree",
	IOIncludeNotFound:   "Included file not found",
	IOIncludeCycle:      "Include cycle detected",
	ProjInfo:            "Project information",
	ProjInvalidManifest: "Invalid idlc.toml",
	ProjNoInputs:        "No input files",
	ObsInfo:             "Observability information",
	ObsTimings:          "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
