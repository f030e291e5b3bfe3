package domain

import (
	"fmt"
	"strconv"
)

// Todo is a persisted to-do item.
type Todo struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTodo is the input shape used both to create a todo and to replace the
// values of an existing one. Title is a pointer so that a missing field can be
// told apart from an empty string; Completed defaults to false when omitted.
type NewTodo struct {
	Title     *string `json:"title" validate:"required"`
	Completed *bool   `json:"completed,omitempty"`
}

// NewTodoInput builds a NewTodo from plain values.
func NewTodoInput(title string, completed bool) NewTodo {
	return NewTodo{Title: &title, Completed: &completed}
}

// Validate checks that the title is present.
func (n NewTodo) Validate() error {
	if n.Title == nil {
		return ErrEmptyTitle
	}
	return nil
}

// TitleValue returns the title, or an empty string when it was omitted.
func (n NewTodo) TitleValue() string {
	if n.Title == nil {
		return ""
	}
	return *n.Title
}

// CompletedValue returns the completed flag, defaulting to false.
func (n NewTodo) CompletedValue() bool {
	return n.Completed != nil && *n.Completed
}

// Status selects todos by their completed flag.
type Status int

// Possible status values
const (
	StatusIncomplete Status = iota
	StatusComplete
)

var statusTokens = map[string]Status{
	"complete":   StatusComplete,
	"incomplete": StatusIncomplete,
}

// ParseStatus maps a path token to a Status. Only "complete" and
// "incomplete" are accepted.
func ParseStatus(token string) (Status, error) {
	s, ok := statusTokens[token]
	if !ok {
		return StatusIncomplete, fmt.Errorf("%w: %q", ErrInvalidStatus, token)
	}
	return s, nil
}

// Completed reports the completed flag this status filters on.
func (s Status) Completed() bool {
	return s == StatusComplete
}

// String returns the path token for the status.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusIncomplete:
		return "incomplete"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseID parses a todo ID from its decimal text form.
func ParseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return int32(id), nil
}
