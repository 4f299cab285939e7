// Package advisor is the entry point of the recommendation core.
package advisor

import (
	"github.com/spigell/subject-advisor/internal/recommend"
	"github.com/spigell/subject-advisor/internal/rules"
	"github.com/spigell/subject-advisor/internal/survey"
	"go.uber.org/zap"
)

// Advisor analyses survey results. It holds no per-call state and is safe
// for concurrent use.
type Advisor struct {
	engine *rules.Engine
	logger *zap.Logger
}

// New creates an advisor over the builtin catalog and rules.
func New(logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{
		engine: rules.NewEngine(logger),
		logger: logger,
	}
}

var std = New(nil)

// Analyze scores a survey with the default advisor.
func Analyze(s survey.Result) recommend.Analysis {
	return std.Analyze(s)
}

// Facts derives the rule engine input from a survey.
func Facts(s survey.Result) rules.Facts {
	return rules.Facts{
		Strong:      survey.StrongSubjects(s.SubjectRatings),
		Personality: survey.ScorePersonality(s.PersonalityAnswers),
		Careers:     s.CareerInterests,
	}
}

// Analyze scores every combination and returns the top recommendations.
func (a *Advisor) Analyze(s survey.Result) recommend.Analysis {
	f := Facts(s)
	scores := a.engine.Run(f)
	analysis := recommend.Build(a.engine.Catalog, scores, f)

	a.logger.Debug("survey analysed",
		zap.String("primary", string(f.Personality.Primary)),
		zap.String("secondary", string(f.Personality.Secondary)),
		zap.Strings("strong_subjects", f.Strong),
		zap.Strings("recommendations", analysis.Names()),
	)

	return analysis
}
