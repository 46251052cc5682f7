package grapherror

import (
	"time"

	"github.com/teranos/netlens/errors"
)

// GraphError represents an error in the graph engine with structured context
type GraphError struct {
	Err         error                  // Underlying error, wraps one of the errors sentinels
	Category    Category               // Main category
	Subcategory string                 // Optional subcategory
	UserMessage string                 // Message a UI can show as "no data" explanation
	Context     map[string]interface{} // Additional context for debugging
	Timestamp   time.Time              // When the error occurred
}

// Error implements the error interface
func (e *GraphError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMessage
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *GraphError) Unwrap() error {
	return e.Err
}

// New creates a new GraphError with the specified category and messages
func New(category Category, err error, userMsg string) *GraphError {
	return &GraphError{
		Err:         err,
		Category:    category,
		UserMessage: userMsg,
		Context:     make(map[string]interface{}),
		Timestamp:   time.Now(),
	}
}

// Integrity creates an integrity error wrapping errors.ErrIntegrity.
func Integrity(sub, format string, args ...interface{}) *GraphError {
	return New(CategoryIntegrity, errors.Wrapf(errors.ErrIntegrity, format, args...), "").
		WithSubcategory(sub)
}

// InvalidParameter creates an error wrapping errors.ErrInvalidModeParameter.
func InvalidParameter(sub, format string, args ...interface{}) *GraphError {
	return New(CategoryInvalidParameter, errors.Wrapf(errors.ErrInvalidModeParameter, format, args...), "").
		WithSubcategory(sub)
}

// EmptyResult creates an error wrapping errors.ErrEmptyResult for the given mode.
func EmptyResult(mode string) *GraphError {
	return New(CategoryEmptyResult, errors.Wrapf(errors.ErrEmptyResult, "%s", mode), "").
		WithContext("mode", mode)
}

// WithSubcategory adds a subcategory to the error
func (e *GraphError) WithSubcategory(sub string) *GraphError {
	e.Subcategory = sub
	return e
}

// WithContext adds a context key-value pair for debugging
func (e *GraphError) WithContext(key string, value interface{}) *GraphError {
	e.Context[key] = value
	return e
}

// WithUserMessage replaces the UI message.
func (e *GraphError) WithUserMessage(msg string) *GraphError {
	e.UserMessage = msg
	return e
}

// HasSubcategory reports whether err is, or wraps, a GraphError with subcategory sub.
func HasSubcategory(err error, sub string) bool {
	var gerr *GraphError
	return errors.As(err, &gerr) && gerr.Subcategory == sub
}
