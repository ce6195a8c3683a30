package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrTypeMismatch    = errors.New("value does not hold the requested type")
	ErrIndexOutOfRange = errors.New("array index is out of range")
	ErrKeyNotFound     = errors.New("object does not contain the requested key")
	ErrInvalidDocument = errors.New("document must start with '{' or '['")
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeType     ErrorType = "type"
	ErrorTypeIndex    ErrorType = "index"
	ErrorTypeKey      ErrorType = "key"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeDocument ErrorType = "document"
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// ParseError reports the offending character and its byte offset in the
// input text. Char is zero when the input ended before the token did.
type ParseError struct {
	Char   byte
	Offset int
}

// Error implements error interface
func (e *ParseError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("unexpected end of input at offset %d", e.Offset)
	}
	return fmt.Sprintf("invalid character %q at offset %d", e.Char, e.Offset)
}

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewTypeMismatchError creates an error for an accessor or conversion
// invoked against a value whose active kind differs from the requested one
func NewTypeMismatchError(got, want string) *AppError {
	return &AppError{
		Type:    ErrorTypeType,
		Message: fmt.Sprintf("cannot use value of type '%s' as '%s'", got, want),
		Err:     ErrTypeMismatch,
	}
}

// NewIndexError creates an error for an array access beyond the current length
func NewIndexError(index, length int) *AppError {
	return &AppError{
		Type:    ErrorTypeIndex,
		Message: fmt.Sprintf("index %d out of range for array of length %d", index, length),
		Err:     ErrIndexOutOfRange,
	}
}

// NewKeyError creates an error for a read-only lookup of an absent object key
func NewKeyError(key string) *AppError {
	return &AppError{
		Type:    ErrorTypeKey,
		Message: fmt.Sprintf("key %q not found", key),
		Err:     ErrKeyNotFound,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(char byte, offset int) *AppError {
	pe := &ParseError{Char: char, Offset: offset}
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: pe.Error(),
		Err:     pe,
	}
}

// NewDocumentError creates an error for input that cannot be a document at
// all: too short, or a top-level token other than '{' or '['
func NewDocumentError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeDocument,
		Message: message,
		Err:     ErrInvalidDocument,
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeType:
			return fmt.Sprintf("Type error: %s", appErr.Message)
		case ErrorTypeIndex:
			return fmt.Sprintf("Index error: %s", appErr.Message)
		case ErrorTypeKey:
			return fmt.Sprintf("Lookup error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeDocument:
			return fmt.Sprintf("Invalid document: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidDocument) {
		return "Error: The input is not a JSON document. The top-level value must be an object or an array."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
