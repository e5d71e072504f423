package driver

import (
	"errors"
	"strconv"
	"strings"

	"idlc/internal/astio"
	"idlc/internal/diag"
	"idlc/internal/resolve"
	"idlc/internal/testkit"
)

// loadDiagnostic converts a Loader failure for path.
func loadDiagnostic(path string, err error) diag.Diagnostic {
	var (
		notFound *astio.IncludeNotFoundError
		cycle    *astio.IncludeCycleError
		decode   *astio.DecodeError
	)
	switch {
	case errors.As(err, &notFound):
		d := diag.NewError(diag.IOIncludeNotFound, notFound.From, "", "include "+strconv.Quote(notFound.Include)+" not found")
		for _, tried := range notFound.Tried {
			d = d.WithNote("", "tried "+tried)
		}
		return d
	case errors.As(err, &cycle):
		return diag.NewError(diag.IOIncludeCycle, path, "", "include cycle: "+strings.Join(cycle.Chain, " -> "))
	case errors.As(err, &decode):
		return diag.NewError(diag.IODecodeError, path, decode.Path, decode.Msg)
	}
	return diag.NewError(diag.IOLoadFileError, path, "", err.Error())
}

// resolveDiagnostic converts a resolver failure for path. The subject is
// the failing definition, qualified by the include chain.
func resolveDiagnostic(path string, err error) diag.Diagnostic {
	var re *resolve.Error
	if !errors.As(err, &re) {
		return diag.NewError(diag.UnknownCode, path, "", err.Error())
	}
	d := diag.NewError(re.Kind.Code(), path, re.Where(), re.Message())
	if len(re.Includes) > 0 {
		d = d.WithNote(strings.Join(re.Includes, "."), "raised while resolving an included document")
	}
	return d
}

// verifyDiagnostic reports a violation found by the invariant checker.
func verifyDiagnostic(path string, err error) diag.Diagnostic {
	var de *testkit.DanglingError
	if errors.As(err, &de) {
		return diag.NewError(diag.SemaDanglingRef, path, de.Path, "unresolved "+de.Node.String()+" survived resolution")
	}
	return diag.NewError(diag.SemaDanglingRef, path, "", err.Error())
}
