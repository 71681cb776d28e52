package core

// # Error Codes Reference
//
// Technical errors are mapped to user-facing messages with a code that can
// be quoted to support.
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Source unavailable: a sheet could not be fetched
//	         Patterns: "source fetch failed"
//	SRC002 - Source too large: a sheet exceeded the size limit
//	         Patterns: "source too large"
//	SRC003 - Source encoding: a sheet could not be decoded
//	         Patterns: "decode source"
//
// # Catalog Errors (CAT001-CAT099)
//
//	CAT001 - Product not found
//	         Patterns: "product not found"
//	CAT002 - Unknown layout: a sheet is misconfigured
//	         Patterns: "unknown layout"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unsupported format
//	         Patterns: "unsupported format"
//	EXP002 - Unsupported currency
//	         Patterns: "unsupported currency"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid parameter
//	         Patterns: "invalid parameter"
//	REQ002 - Request cancelled
//	         Patterns: "context canceled"
//	REQ003 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Build and Rate Errors
//
//	BLD001 - Too many catalog builds in progress
//	         Patterns: "too many catalog builds"
//	RATE001 - Too many requests
//	         Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check application logs for the
// original technical error.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProductNotFound is returned when no product has the requested SKU.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidParameter marks a malformed request parameter.
var ErrInvalidParameter = errors.New("invalid parameter")

// SourceFetchError reports that one sheet could not be retrieved.
// Any SourceFetchError aborts the whole catalog build.
type SourceFetchError struct {
	Sheet      string // Section label of the sheet
	StatusCode int    // Upstream HTTP status, 0 for transport failures
	Err        error
}

func (e *SourceFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("source fetch failed: sheet %s: status %d", e.Sheet, e.StatusCode)
	}
	return fmt.Sprintf("source fetch failed: sheet %s: %v", e.Sheet, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// Specific source failures precede the generic one they are wrapped in.
var errorPatterns = []errorPattern{
	// Source
	{
		pattern: "source too large",
		msg: UserMessage{
			Message: "The product source is larger than allowed",
			Action:  "Contact support",
			Code:    "SRC002",
		},
	},
	{
		pattern: "decode source",
		msg: UserMessage{
			Message: "The product source could not be read",
			Action:  "Contact support",
			Code:    "SRC003",
		},
	},
	{
		pattern: "source fetch failed",
		msg: UserMessage{
			Message: "The product source is temporarily unavailable",
			Action:  "Please try again in a few minutes",
			Code:    "SRC001",
		},
	},

	// Catalog
	{
		pattern: "product not found",
		msg: UserMessage{
			Message: "Product not found",
			Action:  "Use /api/search?q=pepperoni to find products",
			Code:    "CAT001",
		},
	},
	{
		pattern: "unknown layout",
		msg: UserMessage{
			Message: "The catalog is misconfigured",
			Action:  "Contact support",
			Code:    "CAT002",
		},
	},

	// Export
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "Unsupported export format",
			Action:  "Use format=csv, xlsx or xls",
			Code:    "EXP001",
		},
	},
	{
		pattern: "unsupported currency",
		msg: UserMessage{
			Message: "Unsupported currency",
			Action:  "Use one of RUB, USD, KZT, UZS, KGS, BYN, AZN",
			Code:    "EXP002",
		},
	},

	// Request
	{
		pattern: "invalid parameter",
		msg: UserMessage{
			Message: "A request parameter is invalid",
			Action:  "Check the query string and try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again later",
			Code:    "REQ003",
		},
	},

	// Build and rate limiting
	{
		pattern: "too many catalog builds",
		msg: UserMessage{
			Message: "The catalog is busy",
			Action:  "Please wait a moment and try again",
			Code:    "BLD001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the ERR000 fallback when no pattern matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
