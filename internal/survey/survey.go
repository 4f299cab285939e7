// Package survey describes a student's survey submission and derives the
// facts the rule engine works on: strong subjects and dominant personality codes.
package survey

import (
	"sort"

	"github.com/spigell/subject-advisor/internal/catalog"
)

// StrongThreshold is the minimal self-rating of a strong subject.
const StrongThreshold = 4

// Result is one survey submission.
type Result struct {
	// SubjectRatings maps a subject name to the student's self-rating.
	SubjectRatings map[string]int `json:"subject_ratings" mapstructure:"subject_ratings"`
	// PersonalityAnswers maps a question id to the selected answer texts.
	PersonalityAnswers map[string][]string `json:"personality_answers" mapstructure:"personality_answers"`
	CareerInterests    []string            `json:"career_interests" mapstructure:"career_interests"`
}

// StrongSubjects returns the subjects rated at or above StrongThreshold.
// Known subjects come first in vocabulary order, any other names follow sorted.
func StrongSubjects(ratings map[string]int) []string {
	strong := make(map[string]struct{})
	for subject, rating := range ratings {
		if rating >= StrongThreshold {
			strong[subject] = struct{}{}
		}
	}

	out := make([]string, 0, len(strong))
	for _, subject := range catalog.Subjects {
		if _, ok := strong[subject]; ok {
			out = append(out, subject)
			delete(strong, subject)
		}
	}

	rest := make([]string, 0, len(strong))
	for subject := range strong {
		rest = append(rest, subject)
	}
	sort.Strings(rest)

	return append(out, rest...)
}
