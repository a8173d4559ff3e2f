package errors

import "fmt"

// Error codes
const (
	CodeExtraction = "EXTRACTION_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeFetch      = "FETCH_ERROR"
	CodeStore      = "STORE_ERROR"
	CodeCache      = "CACHE_ERROR"
)

type ScrapeError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// ExtractionError marks a hard extraction failure: a required element was
// missing from the page markup or a required field could not be derived.
// The page is skipped entirely, never partially emitted.
type ExtractionError struct {
	*ScrapeError
	Field string
	URL   string
}

func NewExtractionError(field, url, message string) *ExtractionError {
	return &ExtractionError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeExtraction,
			Context: map[string]any{
				"field": field,
				"url":   url,
			},
		},
		Field: field,
		URL:   url,
	}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for field %q (%s): %s", e.Field, e.URL, e.Message)
}

// ValidationError marks an assembled record that failed schema validation.
// Unlike ExtractionError this indicates a defect in the assembler itself,
// not in the input page, so callers log it at a higher severity.
type ValidationError struct {
	*ScrapeError
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		ScrapeError: &ScrapeError{
			Message: reason,
			Code:    CodeValidation,
			Context: map[string]any{
				"field":  field,
				"reason": reason,
			},
		},
		Field:  field,
		Reason: reason,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: field %q %s", e.Field, e.Reason)
}

type FetchError struct {
	*ScrapeError
	URL        string
	StatusCode int
}

func NewFetchError(url string, statusCode int, cause error) *FetchError {
	return &FetchError{
		ScrapeError: &ScrapeError{
			Message: "fetch failed",
			Code:    CodeFetch,
			Context: map[string]any{
				"url":         url,
				"status_code": statusCode,
			},
			Cause: cause,
		},
		URL:        url,
		StatusCode: statusCode,
	}
}

type StoreError struct {
	*ScrapeError
	Operation string
	DocID     string
}

func NewStoreError(message, operation, docID string, cause error) *StoreError {
	return &StoreError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeStore,
			Context: map[string]any{
				"operation": operation,
				"doc_id":    docID,
			},
			Cause: cause,
		},
		Operation: operation,
		DocID:     docID,
	}
}

type CacheError struct {
	*ScrapeError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeCache,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// IsExtractionError reports whether err is a hard extraction failure.
func IsExtractionError(err error) bool {
	_, ok := err.(*ExtractionError)
	return ok
}

// IsValidationError reports whether err is a schema validation failure.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
