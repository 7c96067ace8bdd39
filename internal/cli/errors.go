package cli

import (
	stderrors "errors"

	"github.com/matzehuels/pubgraph/pkg/errors"
)

// FormatError renders err for the terminal. Coded errors show their message
// and cause followed by the code, for example
// "read lib/a.dart: file does not exist [FILE_NOT_FOUND]".
func FormatError(err error) string {
	code := errors.GetCode(err)
	if code == "" {
		return err.Error()
	}

	msg := errors.UserMessage(err)
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg + " [" + string(code) + "]"
}
