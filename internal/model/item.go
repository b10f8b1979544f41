package model

import (
	"errors"
	"fmt"
	"math"
)

// MaxTitleLen is the longest title the interactive form accepts.
const MaxTitleLen = 50

// Item is the domain model for a todo entry.
type Item struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ErrEmptyField is wrapped by every ValidationError.
var ErrEmptyField = errors.New("empty field")

// ValidationError reports an add rejected before any state changed.
type ValidationError struct {
	Field   string // "title" | "description"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrEmptyField }

// FillAllInputs is what the surfaces show when validation fails.
const FillAllInputs = "Please fill all the inputs"

// Validate checks the add preconditions. No trimming: a single space is a title.
func Validate(title, description string) error {
	if len(title) == 0 {
		return &ValidationError{Field: "title", Message: FillAllInputs}
	}
	if len(description) == 0 {
		return &ValidationError{Field: "description", Message: FillAllInputs}
	}
	return nil
}

// ErrIDExhausted is returned when the last item already holds the largest id.
var ErrIDExhausted = errors.New("no id left after the last item")

// NextID returns the id a new item appended to items gets: one more than the
// last element's id, so an id freed at the tail is handed out again.
func NextID(items []Item) (int, error) {
	if len(items) == 0 {
		return 1, nil
	}
	last := items[len(items)-1].ID
	if last >= math.MaxInt {
		return 0, ErrIDExhausted
	}
	return last + 1, nil
}
