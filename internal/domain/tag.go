package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const ActionTag = "Action"

// Tag is one named string parameter of a request. Order inside Tags is
// preserved on the wire.
type Tag struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type Tags []Tag

func Action(name string) Tag {
	return Tag{Name: ActionTag, Value: name}
}

func NumberTag(name string, value float64) Tag {
	return Tag{Name: name, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func IntTag(name string, value int) Tag {
	return Tag{Name: name, Value: strconv.Itoa(value)}
}

// ParseTag parses the "Name=Value" form used on the command line.
func ParseTag(raw string) (Tag, error) {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Tag{}, fmt.Errorf("%w: tag %q must be Name=Value", ErrInvalidRequest, raw)
	}

	return Tag{Name: name, Value: value}, nil
}

// Get returns the value of the first tag with the given name.
func (t Tags) Get(name string) (string, bool) {
	for _, tag := range t {
		if tag.Name == name {
			return tag.Value, true
		}
	}

	return "", false
}

func (t Tags) Action() string {
	value, _ := t.Get(ActionTag)
	return value
}

// With returns a copy of t with the tags appended; t is not modified.
func (t Tags) With(tags ...Tag) Tags {
	out := make(Tags, 0, len(t)+len(tags))
	out = append(out, t...)
	return append(out, tags...)
}

func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}

	return append(Tags(nil), t...)
}

func (t Tags) String() string {
	parts := make([]string, 0, len(t))
	for _, tag := range t {
		parts = append(parts, tag.Name+"="+tag.Value)
	}

	return strings.Join(parts, ",")
}
