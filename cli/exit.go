package cli

import (
	"fmt"

	"readme_gen/apperr"
)

var exitCodes = map[apperr.Kind]int{
	apperr.KindInternal:            1,
	apperr.KindUsage:               2,
	apperr.KindNotFound:            3,
	apperr.KindUnsupportedProvider: 4,
	apperr.KindMissingCredential:   5,
	apperr.KindTimeout:             6,
	apperr.KindProvider:            7,
	apperr.KindIOWrite:             8,
}

// ExitCode maps an error to the process exit status. nil is success.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[apperr.KindOf(err)]; ok {
		return code
	}
	return 1
}

func (a *app) report(err error) int {
	code := ExitCode(err)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error (%s): %v\n", apperr.KindOf(err), err)
	}
	return code
}
