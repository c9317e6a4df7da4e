package trace

import "fmt"

// A FormatError reports a trace line that is not a valid access record.
type FormatError struct {
	Line   int
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trace line %d: %s: %q", e.Line, e.Reason, e.Token)
}

// A ResourceError reports a trace that cannot be opened or read.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot read trace %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
