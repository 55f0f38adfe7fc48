// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package auth

// FieldError describes a single business-rule failure attributed to one
// named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the response envelope for Register and Login. Exactly one of
// Errors or User is set; the Success and Failure constructors enforce the
// exclusivity.
type Result struct {
	Errors []FieldError `json:"errors,omitempty"`
	User   *User        `json:"user,omitempty"`
}

// Success returns a Result carrying the user and no errors.
func Success(user *User) Result {
	return Result{User: user}
}

// Failure returns a Result carrying a single field error and no user.
func Failure(field, message string) Result {
	return Result{Errors: []FieldError{{Field: field, Message: message}}}
}

// OK reports whether the result represents success.
func (r Result) OK() bool {
	return len(r.Errors) == 0 && r.User != nil
}
