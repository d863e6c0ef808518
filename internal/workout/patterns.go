package workout

import (
	"sort"
	"strings"
)

// signatureDelimiter joins exercise names into a workout signature. Exercise
// names never contain it because it is rejected at validation time.
const signatureDelimiter = "|"

// Signature derives the canonical signature for a list of exercise names:
// sorted, de-duplicated, and delimiter-joined. Two workouts sharing a
// signature are considered instances of the same template.
func Signature(exerciseNames []string) string {
	unique := make([]string, 0, len(exerciseNames))
	seen := make(map[string]struct{}, len(exerciseNames))
	for _, name := range exerciseNames {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)
	return strings.Join(unique, signatureDelimiter)
}

// InferPatterns groups historical workouts by signature and returns the
// recurring ones ranked by occurrence.
//
// A signature seen exactly once is not recurring and is suppressed.
// Placeholder entries and workouts without sessions never contribute.
// Patterns are ordered by descending occurrence count; ties keep first-seen
// signature order.
func InferPatterns(workouts []Workout) []TemplatePattern {
	var patterns []TemplatePattern
	index := make(map[string]int)

	for _, w := range workouts {
		if w.Placeholder || len(w.Sessions) == 0 {
			continue
		}
		names := make([]string, len(w.Sessions))
		for i, session := range w.Sessions {
			names[i] = session.ExerciseName
		}
		signature := Signature(names)

		pos, ok := index[signature]
		if !ok {
			pos = len(patterns)
			index[signature] = pos
			patterns = append(patterns, TemplatePattern{
				Signature: signature,
				Exercises: strings.Split(signature, signatureDelimiter),
			})
		}
		patterns[pos].OccurrenceCount++
		patterns[pos].WorkoutIDs = append(patterns[pos].WorkoutIDs, w.ID)
	}

	recurring := patterns[:0]
	for _, p := range patterns {
		if p.OccurrenceCount > 1 {
			recurring = append(recurring, p)
		}
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].OccurrenceCount > recurring[j].OccurrenceCount
	})

	return recurring
}

// MatchesFilter reports whether a template matches a case-insensitive
// substring filter on its name or any of its exercise names. An empty term
// matches everything.
func MatchesFilter(name string, exerciseNames []string, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(name), term) {
		return true
	}
	for _, exerciseName := range exerciseNames {
		if strings.Contains(strings.ToLower(exerciseName), term) {
			return true
		}
	}
	return false
}
