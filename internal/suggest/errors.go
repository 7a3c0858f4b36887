package suggest

import "fmt"

// GenerationError reports a failed suggestion request. The failure is
// surfaced to the caller as is; nothing retries it.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("suggestion generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("suggestion generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
