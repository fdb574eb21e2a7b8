package github

import "fmt"

// ProviderError carries the provider side detail of a failed OAuth or API
// call. Callers usually collapse it into an invalid-code failure; the
// detail is for logs.
type ProviderError struct {
	Provider    string
	Operation   string
	Status      int
	Code        string
	Description string
	Err         error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s failed with status %d", e.Provider, e.Operation, e.Status)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Description != "" {
		msg += ": " + e.Description
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func providerError(operation string, status int, code, description string, err error) *ProviderError {
	return &ProviderError{
		Provider:    "github",
		Operation:   operation,
		Status:      status,
		Code:        code,
		Description: description,
		Err:         err,
	}
}
