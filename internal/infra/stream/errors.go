package stream

import "fmt"

// RecordTooLargeError indicates that a single serialized record exceeds the
// sink's per-record size ceiling. The record is never truncated or split;
// the actual serialized size is carried for diagnostics.
type RecordTooLargeError struct {
	Size int
}

func (e *RecordTooLargeError) Error() string {
	return fmt.Sprintf("record size %d exceeds maximum of %d bytes", e.Size, MaxRecordSize)
}

// PublishError wraps a sink-level transport or service failure. The cause is
// retained for logging and errors.Is/As matching; invocation adapters must
// not expose it in outward-facing messages.
type PublishError struct {
	Stream string
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish to stream '%s': %v", e.Stream, e.Err)
}

// Unwrap returns the underlying sink error.
func (e *PublishError) Unwrap() error {
	return e.Err
}
