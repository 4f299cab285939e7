// Package recommend ranks scored combinations and explains the top picks.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/rules"
)

// TopN is the number of recommended combinations.
const TopN = 3

const placeholder = "Chưa xác định rõ"

// Recommendation is one ranked combination with its justification.
type Recommendation struct {
	Rank     string `json:"rank"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Subjects string `json:"subjects"`
	Reason   string `json:"reason"`
}

// Analysis is the complete advisor output.
type Analysis struct {
	Lines           []string         `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Names returns the recommended combination names in rank order.
func (a Analysis) Names() []string {
	names := make([]string, 0, len(a.Recommendations))
	for _, r := range a.Recommendations {
		names = append(names, r.Name)
	}
	return names
}

// Rank orders list by score, highest first. Equal scores keep list order.
func Rank(list []catalog.Combination, scores rules.Scores) []catalog.Combination {
	ranked := make([]catalog.Combination, len(list))
	copy(ranked, list)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].Code] > scores[ranked[j].Code]
	})
	return ranked
}

// Build ranks the catalog and assembles the analysis summary together with
// up to TopN recommendations.
func Build(list []catalog.Combination, scores rules.Scores, f rules.Facts) Analysis {
	ranked := Rank(list, scores)
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}

	recs := make([]Recommendation, 0, len(ranked))
	for i, c := range ranked {
		recs = append(recs, Recommendation{
			Rank:     fmt.Sprintf("%d. Lựa chọn hàng đầu", i+1),
			Name:     c.Name,
			Score:    scores[c.Code],
			Subjects: strings.Join(c.Subjects, ", "),
			Reason:   Reason(c, f),
		})
	}

	return Analysis{
		Lines:           summary(f),
		Recommendations: recs,
	}
}

func summary(f rules.Facts) []string {
	return []string{
		fmt.Sprintf("Nhóm tính cách nổi bật (Holland): %s (Chính) và %s (Phụ).", f.Personality.Primary, f.Personality.Secondary),
		fmt.Sprintf("Các môn học có thế mạnh: %s.", joinOr(f.Strong)),
		fmt.Sprintf("Định hướng nghề nghiệp quan tâm: %s.", joinOr(f.Careers)),
	}
}

func joinOr(items []string) string {
	if len(items) == 0 {
		return placeholder
	}
	return strings.Join(items, ", ")
}
