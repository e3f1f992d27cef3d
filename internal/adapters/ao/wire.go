package ao

import (
	"encoding/json"
	"strings"

	"github.com/bnema/dumdum-cli/internal/domain"
)

const (
	dryRunPlaceholderID     = "1234"
	dryRunPlaceholderAnchor = "0"
)

type wireTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type dryRunRequest struct {
	ID     string    `json:"Id"`
	Target string    `json:"Target"`
	Owner  string    `json:"Owner"`
	Anchor string    `json:"Anchor"`
	Data   string    `json:"Data"`
	Tags   []wireTag `json:"Tags"`
}

type submitRequest struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Target    string    `json:"target"`
	Anchor    string    `json:"anchor"`
	Tags      []wireTag `json:"tags"`
	Data      []byte    `json:"data"`
	Signature string    `json:"signature"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type wireMessage struct {
	Target string          `json:"Target"`
	Data   json.RawMessage `json:"Data"`
	Tags   []wireTag       `json:"Tags"`
}

// resultResponse is shared by dry-run and result endpoints.
type resultResponse struct {
	Messages []wireMessage     `json:"Messages"`
	Spawns   []json.RawMessage `json:"Spawns"`
	Output   json.RawMessage   `json:"Output"`
	Error    json.RawMessage   `json:"Error"`
}

type wireSpawn struct {
	ID      string `json:"Id"`
	Process string `json:"Process"`
}

type wireOutput struct {
	Data json.RawMessage `json:"data"`
}

func toWireTags(tags domain.Tags) []wireTag {
	out := make([]wireTag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, wireTag{Name: tag.Name, Value: tag.Value})
	}

	return out
}

func fromWireTags(tags []wireTag) domain.Tags {
	if len(tags) == 0 {
		return nil
	}

	out := make(domain.Tags, 0, len(tags))
	for _, tag := range tags {
		out = append(out, domain.Tag{Name: tag.Name, Value: tag.Value})
	}

	return out
}

func (r resultResponse) messages() []domain.OutcomeMessage {
	if len(r.Messages) == 0 {
		return nil
	}

	out := make([]domain.OutcomeMessage, 0, len(r.Messages))
	for _, msg := range r.Messages {
		out = append(out, domain.OutcomeMessage{
			Target: msg.Target,
			Data:   rawText(msg.Data),
			Tags:   fromWireTags(msg.Tags),
		})
	}

	return out
}

func (r resultResponse) spawns() []string {
	if len(r.Spawns) == 0 {
		return nil
	}

	out := make([]string, 0, len(r.Spawns))
	for _, raw := range r.Spawns {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			out = append(out, id)
			continue
		}

		var spawn wireSpawn
		if err := json.Unmarshal(raw, &spawn); err == nil {
			switch {
			case spawn.Process != "":
				out = append(out, spawn.Process)
			case spawn.ID != "":
				out = append(out, spawn.ID)
			}
		}
	}

	return out
}

func (r resultResponse) output() string {
	var output wireOutput
	if err := json.Unmarshal(r.Output, &output); err == nil && len(output.Data) > 0 {
		return rawText(output.Data)
	}

	return rawText(r.Output)
}

func (r resultResponse) errorText() string {
	return strings.TrimSpace(rawText(r.Error))
}

func (r resultResponse) outcome(messageID string) domain.WriteOutcome {
	return domain.WriteOutcome{
		MessageID: messageID,
		Messages:  r.messages(),
		Spawns:    r.spawns(),
		Output:    r.output(),
		Error:     r.errorText(),
	}
}

// rawText unquotes JSON strings and returns any other JSON value verbatim.
func rawText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return trimmed
}
