package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a PropertyError for callers that only care about
// the category of failure (validation, missing row, uniqueness, storage).
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// PropertyError is the single error type surfaced by the property domain.
type PropertyError struct {
	Kind      ErrorKind
	Code      string // stable machine code, e.g. "PROPERTY_NOT_FOUND"
	Message   string
	Err       error
	retryable bool
}

// Error implements error interface
func (e *PropertyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *PropertyError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel values work with errors.Is.
func (e *PropertyError) Is(target error) bool {
	var t *PropertyError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e carrying err as its underlying cause.
func (e *PropertyError) WithCause(err error) *PropertyError {
	c := *e
	c.Err = err
	return &c
}

// Retryable reports whether the operation may succeed if repeated unchanged.
func (e *PropertyError) Retryable() bool {
	return e.retryable
}

// ============================================
// ERROR CODES
// ============================================

const (
	CodeInvalidCode          = "PROPERTY_INVALID_CODE"
	CodeInvalidName          = "PROPERTY_INVALID_NAME"
	CodeInvalidAddress       = "PROPERTY_INVALID_ADDRESS"
	CodeInvalidPrice         = "PROPERTY_INVALID_PRICE"
	CodeInvalidOwner         = "PROPERTY_INVALID_OWNER"
	CodeInvalidAttribute     = "PROPERTY_INVALID_ATTRIBUTE"
	CodeInvalidPropertyID    = "PROPERTY_INVALID_ID"
	CodeInvalidImageURL      = "IMAGE_INVALID_URL"
	CodeInvalidTraceName     = "TRACE_INVALID_NAME"
	CodeInvalidOwnerName     = "OWNER_INVALID_NAME"
	CodeInvalidPageParams    = "INVALID_PAGE_PARAMS"
	CodeOwnerReference       = "PROPERTY_OWNER_NOT_FOUND"
	CodePropertyNotFound     = "PROPERTY_NOT_FOUND"
	CodePropertyGone         = "PROPERTY_NOT_FOUND_ON_UPDATE"
	CodeOwnerNotFound        = "OWNER_NOT_FOUND"
	CodeCodeAlreadyExists    = "PROPERTY_CODE_ALREADY_EXISTS"
	CodeConcurrencyConflict  = "PROPERTY_CONCURRENCY_CONFLICT"
	CodeReadOnlyEntity       = "PROPERTY_READ_ONLY"
	CodeStorageFailure       = "PROPERTY_STORAGE_ERROR"
	CodeOperationCanceled    = "OPERATION_CANCELED"
	CodeOperationTimeout     = "OPERATION_TIMEOUT"
	CodeTraceRecordingFailed = "PROPERTY_TRACE_FAILED"
)

// ============================================
// DOMAIN-SPECIFIC ERROR DEFINITIONS
// ============================================

// ErrPropertyNotFound - no property with the requested id or code
var ErrPropertyNotFound = &PropertyError{
	Kind:    KindNotFound,
	Code:    CodePropertyNotFound,
	Message: "Property not found",
}

// ErrPropertyGone - the row disappeared between load and save
var ErrPropertyGone = &PropertyError{
	Kind:    KindNotFound,
	Code:    CodePropertyGone,
	Message: "Property no longer exists",
}

// ErrOwnerNotFound - no owner with the requested id
var ErrOwnerNotFound = &PropertyError{
	Kind:    KindNotFound,
	Code:    CodeOwnerNotFound,
	Message: "Owner not found",
}

// ErrCodeAlreadyExists - another property already uses this code
var ErrCodeAlreadyExists = &PropertyError{
	Kind:    KindConflict,
	Code:    CodeCodeAlreadyExists,
	Message: "Property code already exists",
}

// ErrConcurrencyConflict - serialization failure or deadlock in storage
var ErrConcurrencyConflict = &PropertyError{
	Kind:      KindConflict,
	Code:      CodeConcurrencyConflict,
	Message:   "Property was modified concurrently",
	retryable: true,
}

// ErrOwnerReference - the referenced owner does not exist
var ErrOwnerReference = &PropertyError{
	Kind:    KindInvalidInput,
	Code:    CodeOwnerReference,
	Message: "Referenced owner does not exist",
}

// ErrReadOnlyEntity - entity was loaded for reading and cannot be saved
var ErrReadOnlyEntity = &PropertyError{
	Kind:    KindUnexpected,
	Code:    CodeReadOnlyEntity,
	Message: "Property was loaded read-only and cannot be saved",
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewInvalidInput builds a validation error for a single field
func NewInvalidInput(code, message string) *PropertyError {
	return &PropertyError{Kind: KindInvalidInput, Code: code, Message: message}
}

// NewPropertyNotFound builds a not-found error naming the lookup key
func NewPropertyNotFound(key any) *PropertyError {
	return &PropertyError{
		Kind:    KindNotFound,
		Code:    CodePropertyNotFound,
		Message: fmt.Sprintf("Property %v not found", key),
	}
}

// NewOwnerNotFound builds a not-found error for an owner id
func NewOwnerNotFound(id int64) *PropertyError {
	return &PropertyError{
		Kind:    KindNotFound,
		Code:    CodeOwnerNotFound,
		Message: fmt.Sprintf("Owner %d not found", id),
	}
}

// NewCodeAlreadyExists builds a conflict error for a duplicate code
func NewCodeAlreadyExists(code string) *PropertyError {
	return &PropertyError{
		Kind:    KindConflict,
		Code:    CodeCodeAlreadyExists,
		Message: fmt.Sprintf("Property with code '%s' already exists", code),
	}
}

// NewConcurrencyConflict wraps a storage serialization failure
func NewConcurrencyConflict(err error) *PropertyError {
	return &PropertyError{
		Kind:      KindConflict,
		Code:      CodeConcurrencyConflict,
		Message:   "Property was modified concurrently",
		Err:       err,
		retryable: true,
	}
}

// NewInvalidPageParams builds a validation error for pagination
func NewInvalidPageParams(page, pageSize int) *PropertyError {
	return &PropertyError{
		Kind:    KindInvalidInput,
		Code:    CodeInvalidPageParams,
		Message: fmt.Sprintf("Invalid pagination params: page=%d, pageSize=%d", page, pageSize),
	}
}

// NewStorageError wraps an unclassified storage failure. Cancellation and
// deadline errors are kept distinguishable.
func NewStorageError(op string, err error) *PropertyError {
	switch {
	case errors.Is(err, context.Canceled):
		return &PropertyError{Kind: KindUnexpected, Code: CodeOperationCanceled, Message: op + " canceled", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &PropertyError{Kind: KindUnexpected, Code: CodeOperationTimeout, Message: op + " timed out", Err: err, retryable: true}
	}
	return &PropertyError{
		Kind:    KindUnexpected,
		Code:    CodeStorageFailure,
		Message: fmt.Sprintf("Failed to %s", op),
		Err:     err,
	}
}

// NewTraceRecordingError reports a price change that was saved but whose
// history record could not be appended.
func NewTraceRecordingError(propertyID int64, err error) *PropertyError {
	return &PropertyError{
		Kind:    KindUnexpected,
		Code:    CodeTraceRecordingFailed,
		Message: fmt.Sprintf("Price of property %d changed but trace was not recorded", propertyID),
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

// KindOf returns the ErrorKind of err, KindUnexpected for foreign errors
func KindOf(err error) ErrorKind {
	var pErr *PropertyError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return KindUnexpected
}

func IsInvalidInput(err error) bool { return err != nil && KindOf(err) == KindInvalidInput }
func IsNotFound(err error) bool     { return err != nil && KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return err != nil && KindOf(err) == KindConflict }

// IsRetryable reports whether err is a PropertyError marked retryable
func IsRetryable(err error) bool {
	var pErr *PropertyError
	return errors.As(err, &pErr) && pErr.Retryable()
}

// IsDomainError kiểm tra có phải PropertyError
func IsDomainError(err error) bool {
	var pErr *PropertyError
	return errors.As(err, &pErr)
}

// GetErrorCode lấy error code từ error
func GetErrorCode(err error) string {
	var pErr *PropertyError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return "UNKNOWN_ERROR"
}

// GetErrorMessage lấy error message từ error
func GetErrorMessage(err error) string {
	var pErr *PropertyError
	if errors.As(err, &pErr) {
		return pErr.Message
	}
	return err.Error()
}

// StatusClientClosedRequest is the non-standard status used when the
// caller went away before the operation finished.
const StatusClientClosedRequest = 499

// MapErrorToHTTP chuyển PropertyError sang HTTP status, message, code
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "Request canceled", CodeOperationCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out", CodeOperationTimeout
	}

	if !IsDomainError(err) {
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}

	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest, GetErrorMessage(err), GetErrorCode(err)
	case KindNotFound:
		return http.StatusNotFound, GetErrorMessage(err), GetErrorCode(err)
	case KindConflict:
		return http.StatusConflict, GetErrorMessage(err), GetErrorCode(err)
	default:
		return http.StatusInternalServerError, GetErrorMessage(err), GetErrorCode(err)
	}
}
