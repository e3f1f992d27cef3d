package domain

import (
	"errors"
	"fmt"
)

var (
	ErrWalletUnavailable  = errors.New("wallet unavailable")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrConnectionDenied   = errors.New("wallet connection denied")
	ErrSigningRejected    = errors.New("signing rejected")
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrSecretNotFound     = errors.New("secret not found")

	ErrRemoteUnavailable = errors.New("remote process unavailable")
	ErrRemoteRejected    = errors.New("remote process rejected request")
	ErrMalformedPayload  = errors.New("malformed remote payload")
	ErrInvalidRequest    = errors.New("invalid request")
)

// RemoteRejectedError carries the error text a remote process settled a
// write with. The message is surfaced verbatim.
type RemoteRejectedError struct {
	ProcessID string
	Action    string
	Message   string
}

func (e *RemoteRejectedError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("process %s rejected request: %s", e.ProcessID, e.Message)
	}

	return fmt.Sprintf("process %s rejected %s: %s", e.ProcessID, e.Action, e.Message)
}

func (e *RemoteRejectedError) Is(target error) bool {
	return target == ErrRemoteRejected
}
