package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type ReadRequest struct {
	ProcessID string
	Tags      Tags
}

func (r ReadRequest) Validate() error {
	if strings.TrimSpace(r.ProcessID) == "" {
		return fmt.Errorf("%w: process id is required", ErrInvalidRequest)
	}

	return nil
}

// WriteRequest mutates remote state. Every submission is a separate event;
// sending the same request twice may apply its effect twice.
type WriteRequest struct {
	ProcessID string
	Tags      Tags
	Data      []byte
}

func (r WriteRequest) Validate() error {
	if strings.TrimSpace(r.ProcessID) == "" {
		return fmt.Errorf("%w: process id is required", ErrInvalidRequest)
	}

	return nil
}

// Value is the JSON payload of a read. A nil Value means the remote
// process answered without a message.
type Value json.RawMessage

func (v Value) IsEmpty() bool {
	trimmed := bytes.TrimSpace(v)
	switch string(trimmed) {
	case "", "null", "[]", "{}", `""`:
		return true
	default:
		return false
	}
}

// Decode unmarshals the payload into out. An empty value leaves out
// untouched.
func (v Value) Decode(out any) error {
	if len(bytes.TrimSpace(v)) == 0 {
		return nil
	}
	if err := json.Unmarshal(v, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(v)) == 0 {
		return []byte("null"), nil
	}

	return []byte(v), nil
}

type OutcomeMessage struct {
	Target string `json:"Target,omitempty" yaml:"target,omitempty"`
	Data   string `json:"Data" yaml:"data"`
	Tags   Tags   `json:"Tags,omitempty" yaml:"tags,omitempty"`
}

// WriteOutcome is what a remote process reports once a write settles.
type WriteOutcome struct {
	MessageID string           `json:"MessageID" yaml:"message_id"`
	Messages  []OutcomeMessage `json:"Messages" yaml:"messages"`
	Spawns    []string         `json:"Spawns" yaml:"spawns"`
	Output    string           `json:"Output" yaml:"output"`
	Error     string           `json:"Error,omitempty" yaml:"error,omitempty"`
}

func (o WriteOutcome) Failed() bool {
	return strings.TrimSpace(o.Error) != ""
}

// Err returns a *RemoteRejectedError for a failed outcome and nil otherwise.
func (o WriteOutcome) Err(processID string, action string) error {
	if !o.Failed() {
		return nil
	}

	return &RemoteRejectedError{ProcessID: processID, Action: action, Message: o.Error}
}

// MessageData returns the data of the i-th emitted message.
func (o WriteOutcome) MessageData(i int) (string, bool) {
	if i < 0 || i >= len(o.Messages) {
		return "", false
	}

	return o.Messages[i].Data, true
}
