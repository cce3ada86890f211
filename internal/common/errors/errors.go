// Package errors provides the structured error type shared by the assistant's
// HTTP surface, its collaborators and its job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeUnrecognizedCommand ErrorCode = "UNRECOGNIZED_COMMAND"
	ErrCodeItemNotFound        ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeNoItemsInRange      ErrorCode = "NO_ITEMS_IN_RANGE"

	ErrCodePricingUnavailable    ErrorCode = "PRICING_UNAVAILABLE"
	ErrCodePricingTimeout        ErrorCode = "PRICING_TIMEOUT"
	ErrCodeSuggestionUnavailable ErrorCode = "SUGGESTION_UNAVAILABLE"
	ErrCodeSuggestionTimeout     ErrorCode = "SUGGESTION_TIMEOUT"

	ErrCodeLLMFailed  ErrorCode = "LLM_FAILED"
	ErrCodeLLMTimeout ErrorCode = "LLM_TIMEOUT"

	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCacheFailed       ErrorCode = "CACHE_FAILED"
	ErrCodeSearchFailed      ErrorCode = "SEARCH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is and errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables renders the error as process variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"retryable":    e.Retryable,
	}
	if e.Details != "" {
		vars["errorDetails"] = e.Details
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidRequestError creates a non-retryable validation error.
func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, false, nil)
}

// NewUnrecognizedCommandError reports an utterance the classifier could not interpret.
func NewUnrecognizedCommandError(utterance string) *StandardError {
	return newError(ErrCodeUnrecognizedCommand, "Command not recognized",
		fmt.Sprintf("utterance: %q", utterance), false, nil)
}

// NewItemNotFoundError reports a phrase with no catalog or cart match.
func NewItemNotFoundError(item string) *StandardError {
	return newError(ErrCodeItemNotFound, "Item not found",
		fmt.Sprintf("item: %s", item), false, nil)
}

// NewNoItemsInRangeError reports an empty result after price filtering.
func NewNoItemsInRangeError(details string) *StandardError {
	return newError(ErrCodeNoItemsInRange, "No items match the price filter", details, false, nil)
}

// NewPricingUnavailableError creates a retryable pricing collaborator error.
func NewPricingUnavailableError(err error) *StandardError {
	return newError(ErrCodePricingUnavailable, "Pricing service unavailable", err.Error(), true, err)
}

// NewPricingTimeoutError creates a retryable pricing collaborator timeout.
func NewPricingTimeoutError(err error) *StandardError {
	return newError(ErrCodePricingTimeout, "Pricing service timeout", err.Error(), true, err)
}

// NewSuggestionUnavailableError creates a retryable suggestion collaborator error.
func NewSuggestionUnavailableError(err error) *StandardError {
	return newError(ErrCodeSuggestionUnavailable, "Suggestion service unavailable", err.Error(), true, err)
}

// NewSuggestionTimeoutError creates a retryable suggestion collaborator timeout.
func NewSuggestionTimeoutError(err error) *StandardError {
	return newError(ErrCodeSuggestionTimeout, "Suggestion service timeout", err.Error(), true, err)
}

// NewLLMFailedError creates a retryable language model error.
func NewLLMFailedError(provider string, err error) *StandardError {
	return newError(ErrCodeLLMFailed, fmt.Sprintf("Language model '%s' error", provider), err.Error(), true, err)
}

// NewLLMTimeoutError creates a retryable language model timeout.
func NewLLMTimeoutError(provider string, err error) *StandardError {
	return newError(ErrCodeLLMTimeout, fmt.Sprintf("Language model '%s' timeout", provider), err.Error(), true, err)
}

// NewCatalogLoadFailedError creates a retryable catalog source error.
func NewCatalogLoadFailedError(err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Catalog load failed", err.Error(), true, err)
}

// NewCacheFailedError creates a non-retryable cache error; callers fall through to the source.
func NewCacheFailedError(op string, err error) *StandardError {
	return newError(ErrCodeCacheFailed, fmt.Sprintf("Cache %s failed", op), err.Error(), false, err)
}

// NewSearchFailedError creates a retryable search index error.
func NewSearchFailedError(err error) *StandardError {
	return newError(ErrCodeSearchFailed, "Catalog search failed", err.Error(), true, err)
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePricingUnavailable,
		ErrCodeSuggestionUnavailable,
		ErrCodeLLMFailed,
		ErrCodeCatalogLoadFailed,
		ErrCodeSearchFailed:
		return 3

	case ErrCodePricingTimeout,
		ErrCodeSuggestionTimeout:
		return 2

	case ErrCodeLLMTimeout:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "PRICING"):
		return "PRICING"
	case strings.HasPrefix(codeStr, "SUGGESTION"):
		return "SUGGESTION"
	case strings.HasPrefix(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "SEARCH"):
		return "CATALOG"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case codeStr == string(ErrCodeUnrecognizedCommand) ||
		codeStr == string(ErrCodeItemNotFound) ||
		codeStr == string(ErrCodeNoItemsInRange):
		return "COMMAND"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
