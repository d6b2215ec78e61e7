// Package apperror defines the domain error taxonomy shared by all modules.
// Every error carries a stable machine-readable code and a human-readable
// message; the API layer maps kinds to HTTP status codes and must not invent
// new codes.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindValidation
	KindDuplicate
	KindBusinessRule
)

// Stable error codes, shared with API clients.
const (
	CodeNotFound       = "ENTITY_NOT_FOUND"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeDuplicate      = "DUPLICATE_ENTITY"
	CodeBusinessRule   = "BUSINESS_RULE_VIOLATION"
)

var kindByCode = map[string]Kind{
	CodeNotFound:       KindNotFound,
	CodeAuthentication: KindAuthentication,
	CodeAuthorization:  KindAuthorization,
	CodeValidation:     KindValidation,
	CodeDuplicate:      KindDuplicate,
	CodeBusinessRule:   KindBusinessRule,
}

// Error is a domain error with a taxonomy kind and stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

// Error renders the code ahead of the message so the code survives plain
// string transport (the mono service container round-trips errors as text).
func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NotFound reports that an entity does not exist.
func NotFound(entityType, entityID string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id %s not found", entityType, entityID),
	}
}

// Authentication reports a failed authentication attempt.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Code: CodeAuthentication, Message: message}
}

// Authorization reports an access-denied condition.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Code: CodeAuthorization, Message: message}
}

// Validation reports a field validation failure.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: message}
}

// Duplicate reports a uniqueness violation on an entity field.
func Duplicate(entityType, field, value string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s with %s '%s' already exists", entityType, field, value),
	}
}

// BusinessRule reports a violated business rule.
func BusinessRule(message string) *Error {
	return &Error{Kind: KindBusinessRule, Code: CodeBusinessRule, Message: message}
}

// TaskAssignment reports an invalid task assignment. It is a business rule
// violation with a dedicated message prefix, matching the notification the
// API sends back for assignment to missing or inactive users.
func TaskAssignment(message string) *Error {
	return BusinessRule("Task assignment error: " + message)
}

// From extracts the taxonomy error from err, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Parse recovers a taxonomy error from its string form ("CODE: message").
// Used where errors cross the service container and arrive as plain text.
func Parse(s string) (*Error, bool) {
	for code, kind := range kindByCode {
		idx := strings.Index(s, code+": ")
		if idx < 0 {
			continue
		}
		return &Error{
			Kind:    kind,
			Code:    code,
			Message: s[idx+len(code)+2:],
		}, true
	}
	return nil, false
}
