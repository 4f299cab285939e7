// Package rules turns survey facts into a score per subject combination.
package rules

import (
	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/survey"
	"go.uber.org/zap"
)

// Facts are the derived survey facts every rule works on.
type Facts struct {
	Strong      []string
	Personality survey.PersonalityScore
	Careers     []string
}

// HasStrong reports whether subject is one of the strong subjects.
func (f Facts) HasStrong(subject string) bool {
	for _, s := range f.Strong {
		if s == subject {
			return true
		}
	}
	return false
}

// HasCareer reports whether the exact career label was picked.
func (f Facts) HasCareer(label string) bool {
	for _, c := range f.Careers {
		if c == label {
			return true
		}
	}
	return false
}

// Scores maps a combination code to its score.
type Scores map[string]int

// add awards points to a combination known to the scores table. Codes that
// are not part of the table are ignored.
func (s Scores) add(code string, points int) int {
	if _, ok := s[code]; !ok {
		return 0
	}
	s[code] += points
	return points
}

// Rule is a single scoring rule.
type Rule interface {
	Name() string
	Apply(f Facts, s Scores) Step
}

// Step describes what a rule did.
type Step struct {
	Awarded int
	Touched []string
}

// Engine applies rules in order to a freshly seeded scores table.
type Engine struct {
	Catalog []catalog.Combination
	Rules   []Rule
	Logger  *zap.Logger
}

// Default returns the four builtin rules in their application order.
func Default() []Rule {
	return []Rule{
		NewPersonality(),
		NewStrength(catalog.Combinations),
		NewCareer(),
		NewSpecialCombo(),
	}
}

// NewEngine creates an engine over the builtin catalog and rules.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Catalog: catalog.Combinations,
		Rules:   Default(),
		Logger:  logger,
	}
}

// Seed returns a scores table with zero for every combination of list.
func Seed(list []catalog.Combination) Scores {
	s := make(Scores, len(list))
	for _, c := range list {
		s[c.Code] = 0
	}
	return s
}

// Run scores every combination of the engine catalog.
func (e *Engine) Run(f Facts) Scores {
	scores := Seed(e.Catalog)

	for _, rule := range e.Rules {
		info := rule.Apply(f, scores)
		if e.Logger != nil {
			e.Logger.Debug("rule step",
				zap.String("name", rule.Name()),
				zap.Int("awarded", info.Awarded),
				zap.Strings("combinations", info.Touched),
			)
		}
	}

	return scores
}
