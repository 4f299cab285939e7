package survey

import (
	"sort"

	"github.com/spigell/subject-advisor/internal/catalog"
)

// PersonalityScore is the outcome of counting personality answers.
type PersonalityScore struct {
	Primary   catalog.Code         `json:"primary"`
	Secondary catalog.Code         `json:"secondary"`
	Counts    map[catalog.Code]int `json:"counts"`
}

// ScorePersonality counts one point per recognised answer and picks the two
// highest codes. Equal counts keep canonical code order, so an empty survey
// resolves to R and I.
func ScorePersonality(answers map[string][]string) PersonalityScore {
	counts := make(map[catalog.Code]int, len(catalog.Codes))
	for _, c := range catalog.Codes {
		counts[c] = 0
	}

	for question, selected := range answers {
		for _, answer := range selected {
			if code, ok := catalog.AnswerCode(question, answer); ok {
				counts[code]++
			}
		}
	}

	ranked := make([]catalog.Code, len(catalog.Codes))
	copy(ranked, catalog.Codes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	return PersonalityScore{
		Primary:   ranked[0],
		Secondary: ranked[1],
		Counts:    counts,
	}
}
