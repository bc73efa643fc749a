package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents transport and browser session errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeMalformedCard represents a listing card missing a required field
	ErrorTypeMalformedCard ErrorType = "malformed_card"
	// ErrorTypeParsing represents markup that could not be parsed at all
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents invalid caller input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError is the error type returned by every stage of a search.
// Source names the stage or card tier that failed, Field the card field
// when the error is a malformed card.
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Field   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	source := e.Source
	if e.Field != "" {
		source = fmt.Sprintf("%s.%s", e.Source, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable.
// Nothing in the search pipeline retries on its own; callers decide.
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, source, message, err)
}

// NewMalformedCard creates an error for a card of the given tier whose
// required field could not be read.
func NewMalformedCard(tier, field, message string) *ScrapeError {
	e := New(ErrorTypeMalformedCard, tier, message, nil)
	e.Field = field
	return e
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source, retryAfter string) *ScrapeError {
	message := "rate limited"
	if retryAfter != "" {
		message = fmt.Sprintf("rate limited; retry after %s", retryAfter)
	}
	return New(ErrorTypeRateLimit, source, message, nil)
}

// NewCache creates a new cache error
func NewCache(source, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, source, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewValidation creates a new validation error
func NewValidation(source, message string) *ScrapeError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "config", message, err)
}

// TypeOf returns the ErrorType of the first ScrapeError in err's chain,
// or an empty ErrorType when there is none.
func TypeOf(err error) ErrorType {
	var se *ScrapeError
	if stderrors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsRetryable reports whether err carries a ScrapeError worth running again
func IsRetryable(err error) bool {
	var se *ScrapeError
	return stderrors.As(err, &se) && se.IsRetryable()
}

func IsValidation(err error) bool    { return TypeOf(err) == ErrorTypeValidation }
func IsMalformedCard(err error) bool { return TypeOf(err) == ErrorTypeMalformedCard }
func IsRateLimit(err error) bool     { return TypeOf(err) == ErrorTypeRateLimit }
func IsNetwork(err error) bool       { return TypeOf(err) == ErrorTypeNetwork }
