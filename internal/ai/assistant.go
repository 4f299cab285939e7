// Package ai defines optional AI commentary on top of the deterministic
// recommendation.
package ai

import (
	"context"

	"github.com/spigell/subject-advisor/internal/recommend"
	"github.com/spigell/subject-advisor/internal/survey"
)

// Commentary is a short narrative for the student.
type Commentary struct {
	Text string
	Raw  string
}

// Narrator writes commentary for an analysed survey. It never changes the
// ranking or the scores.
type Narrator interface {
	Narrate(ctx context.Context, s survey.Result, a recommend.Analysis) (*Commentary, error)
}
