package workout

import (
	"fmt"
	"strings"
)

// ValidationError describes user input rejected before it reaches the
// aggregation or replication core.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const (
	minRPE = 5.0
	maxRPE = 10.0
)

// SetInput is a set as submitted by the client when logging or updating.
type SetInput struct {
	Weight          *float64 `json:"weight"`
	Reps            int      `json:"reps"`
	RPE             *float64 `json:"rpe"`
	AddedResistance *float64 `json:"added_resistance"`
}

// Validate checks a logged set: at least one rep, RPE within the 5-10 scale
// when present, non-negative weight, and added resistance only on bodyweight
// sets.
func (in SetInput) Validate() error {
	if in.Reps < 1 {
		return &ValidationError{Field: "reps", Reason: "must be at least 1"}
	}
	if in.Weight != nil && *in.Weight < 0 {
		return &ValidationError{Field: "weight", Reason: "must not be negative"}
	}
	if in.RPE != nil && (*in.RPE < minRPE || *in.RPE > maxRPE) {
		return &ValidationError{Field: "rpe", Reason: fmt.Sprintf("must be between %.0f and %.0f", minRPE, maxRPE)}
	}
	if in.AddedResistance != nil && in.Weight != nil {
		return &ValidationError{Field: "added_resistance", Reason: "applies only to bodyweight sets"}
	}
	return nil
}

// TemplateInput is a user template as submitted by the client.
type TemplateInput struct {
	Name      string `json:"name"`
	Exercises []struct {
		ExerciseID int `json:"exercise_id"`
		SetCount   int `json:"set_count"`
	} `json:"exercises"`
}

// Validate checks a user template: non-empty name and a positive set count
// per exercise. A template without exercises is allowed; replicating it is a
// no-op.
func (in TemplateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	for _, e := range in.Exercises {
		if e.SetCount < 1 {
			return &ValidationError{Field: "set_count", Reason: "must be at least 1"}
		}
	}
	return nil
}

// validateExerciseName rejects names that cannot take part in a template
// signature.
func validateExerciseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.Contains(name, signatureDelimiter) {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must not contain %q", signatureDelimiter)}
	}
	return nil
}
