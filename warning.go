package layoutkit

import (
	"errors"
	"strings"

	"github.com/tsawler/layoutkit/config"
)

// Warning is a non-fatal issue met while extracting. Extraction still
// succeeded but the result may differ from what was asked for.
type Warning struct {
	// Message describes the issue
	Message string

	// Err is the underlying error, if any
	Err error
}

// String returns the warning message
func (w Warning) String() string {
	return w.Message
}

// IsOption reports whether the warning is about an ignored option
func (w Warning) IsOption() bool {
	return errors.Is(w.Err, config.ErrUnknownOption) || errors.Is(w.Err, config.ErrInvalidOption)
}

func warningFrom(err error) Warning {
	return Warning{Message: err.Error(), Err: err}
}

// FormatWarnings joins warning messages into one line.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
