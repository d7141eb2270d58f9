package gateway

import "fmt"

// ExtractionError reports a failed OCR request.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from image: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ProcessingError reports a failed classify-and-solve request.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("failed to process request: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// MalformedResponseError reports model output that could not be parsed
// into a classified result. Raw holds the text after fence stripping.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ChatError reports a failed tutor chat request.
type ChatError struct {
	Err error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("failed to get response from tutor: %v", e.Err)
}

func (e *ChatError) Unwrap() error { return e.Err }
