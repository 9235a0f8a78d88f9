package polyjson

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError            = "parse_error"
	CodeInvalidType           = "invalid_type"
	CodeInvalidFormat         = "invalid_format"
	CodeRequired              = "required"
	CodeDiscriminatorMissing  = "discriminator_missing"
	CodeDiscriminatorUnknown  = "discriminator_unknown"
	CodeUnregisteredInterface = "unregistered_interface"
	CodeArrayElement          = "array_element"
	CodeRegistryInvalid       = "registry_invalid"
	// invalid_coding_shape is carried on the panic raised when host-native
	// data of an unrecognized shape is lifted into a Value. It never appears
	// in a returned Issues value; see CodingShapeError.
	CodeInvalidCodingShape = "invalid_coding_shape"
)

// Issue represents a single decode/encode failure entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /children/2/type).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected values, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"value":"motion", "index":2})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. discriminator_unknown at /type
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the first recorded cause for errors.Is/As chains.
func (iss Issues) Unwrap() error {
	for _, it := range iss {
		if it.Cause != nil {
			return it.Cause
		}
	}
	return nil
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether any issue in err carries the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// CodingShapeError reports host-native data that cannot be lifted into a
// Value. It is raised via panic from FromAny because it indicates a
// programming error in how data was staged for encoding, not bad external
// input; decode paths go through the typed container API and cannot hit it.
type CodingShapeError struct {
	Value any
}

func (e *CodingShapeError) Error() string {
	return fmt.Sprintf("polyjson: %s: cannot lift %T into a Value", CodeInvalidCodingShape, e.Value)
}
