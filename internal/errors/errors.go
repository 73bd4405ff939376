package errors

import (
	"errors"
	"fmt"

	"github.com/mcncl/jsoncmp/internal/models"
)

// Standard application errors
var (
	ErrEmptyInput        = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON       = errors.New("invalid JSON format")
	ErrMultipleJSON      = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileEmpty         = errors.New("file is empty")
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoMatch           = errors.New("selection matched nothing")
	ErrInvalidPath       = models.ErrInvalidPath
	ErrBothStdin         = errors.New("only one document can be read from stdin")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeRender  ErrorType = "render"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

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

// NewInputError creates a new error related to reading documents
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to decoding documents
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// NewRenderError creates a new error related to rendering results
func NewRenderError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeRender, Message: message, Err: err}
}

// NewOutputError creates a new error related to writing results
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeRender:
			return fmt.Sprintf("Render error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Error: The input is empty. Please provide a JSON, YAML or TOML document."
	case errors.Is(err, ErrInvalidJSON):
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	case errors.Is(err, ErrMultipleJSON):
		return "Error: Multiple JSON values found. Please provide a single JSON document per side."
	case errors.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case errors.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty."
	case errors.Is(err, ErrInvalidFilePath):
		return "Error: Invalid file path. Please provide a valid file path."
	case errors.Is(err, ErrUnsupportedFormat):
		return "Error: Unsupported document format. Use .json, .yaml, .yml or .toml files."
	case errors.Is(err, ErrNoMatch):
		return "Error: The selection query matched nothing in the document."
	case errors.Is(err, ErrInvalidPath):
		return "Error: Invalid path. Paths look like /a/[0]/b."
	case errors.Is(err, ErrBothStdin):
		return "Error: Only one of the two documents can be read from stdin."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
