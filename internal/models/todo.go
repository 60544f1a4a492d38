package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrSchemaDecode = errors.New("schema decode failed")

const (
	ProgressionNotStarted = 0
	ProgressionInProgress = 1
	ProgressionDone       = 2
)

// Absent fields encode as null. Progression is only ever set by the history
// operations, never taken from model output.
type Issue struct {
	Title                 *string `json:"title"`
	Description           *string `json:"description"`
	EstimatedWorkingHours *int16  `json:"estimated_working_hours"`
	Progression           *int    `json:"progression,omitempty"`
}

// Issues keeps nil (absent) and empty apart.
type Todo struct {
	Title     *string    `json:"title"`
	Summary   *string    `json:"summary"`
	Issues    []Issue    `json:"issues"`
	CreatedAt *time.Time `json:"created_at"`
}

// DecodeTodo parses the model's output text straight into a Todo. Unknown
// fields are ignored, any type mismatch fails the whole decode.
func DecodeTodo(text string) (*Todo, error) {
	var todo Todo
	if err := json.Unmarshal([]byte(text), &todo); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaDecode, err)
	}
	return &todo, nil
}

func ValidProgression(p int) bool {
	return p >= ProgressionNotStarted && p <= ProgressionDone
}
