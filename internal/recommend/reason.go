package recommend

import (
	"fmt"
	"strings"

	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/rules"
)

const (
	personalityFitText = "rất phù hợp với thiên hướng tính cách của bạn"
	careerFitText      = "hỗ trợ mạnh mẽ cho định hướng nghề nghiệp bạn đã chọn"
	balancedText       = "đây là một lựa chọn cân bằng giữa các yếu tố"
)

// Clause is one optional part of a recommendation reason. Text returns false
// when the clause does not apply to the combination.
type Clause struct {
	Name string
	Text func(c catalog.Combination, f rules.Facts) (string, bool)
}

// GroupFit favours a set of combinations for a group of primary codes.
type GroupFit struct {
	Codes        []catalog.Code
	Combinations []string
}

func (g GroupFit) matches(c catalog.Combination, f rules.Facts) bool {
	return containsCode(g.Codes, f.Personality.Primary) && contains(g.Combinations, c.Code)
}

// CareerHint links a career substring to the combinations it supports.
type CareerHint struct {
	Substring    string
	Combinations []string
}

var (
	// AnalyticalFit covers the science track.
	AnalyticalFit = GroupFit{
		Codes:        []catalog.Code{catalog.Investigative, catalog.Realistic},
		Combinations: []string{catalog.KHTN1, catalog.KHTN2, catalog.KHTN3},
	}
	// PeopleFit covers the social and general track.
	PeopleFit = GroupFit{
		Codes:        []catalog.Code{catalog.Artistic, catalog.Social, catalog.Enterprising, catalog.Conventional},
		Combinations: []string{catalog.KHXH1, catalog.KHXH2, catalog.COBAN1},
	}

	// CareerHints are matched by substring, independently of the exact
	// labels used by the career scoring rule.
	CareerHints = []CareerHint{
		{Substring: "Kỹ thuật", Combinations: []string{catalog.KHTN1, catalog.KHTN3}},
		{Substring: "Y - Dược", Combinations: []string{catalog.KHTN2}},
		{Substring: "Kinh tế", Combinations: []string{catalog.COBAN1}},
		{Substring: "Xã hội", Combinations: []string{catalog.KHXH1, catalog.KHXH2}},
	}
)

// Clauses are evaluated in order; every applicable clause is kept.
var Clauses = []Clause{
	{Name: "analytical_fit", Text: groupFitClause(AnalyticalFit)},
	{Name: "people_fit", Text: groupFitClause(PeopleFit)},
	{Name: "strong_subjects", Text: strongSubjectsClause},
	{Name: "career_fit", Text: careerClause},
}

// Reason explains why combination c was recommended.
func Reason(c catalog.Combination, f rules.Facts) string {
	parts := make([]string, 0, len(Clauses))
	for _, clause := range Clauses {
		if text, ok := clause.Text(c, f); ok {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		parts = append(parts, balancedText)
	}

	return fmt.Sprintf("Tổ hợp này %s.", strings.Join(parts, ", và "))
}

func groupFitClause(g GroupFit) func(catalog.Combination, rules.Facts) (string, bool) {
	return func(c catalog.Combination, f rules.Facts) (string, bool) {
		return personalityFitText, g.matches(c, f)
	}
}

func strongSubjectsClause(c catalog.Combination, f rules.Facts) (string, bool) {
	matches := make([]string, 0, len(c.Subjects))
	for _, s := range f.Strong {
		if c.Has(s) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	return "khớp với các môn bạn học tốt là " + strings.Join(matches, ", "), true
}

func careerClause(c catalog.Combination, f rules.Facts) (string, bool) {
	for _, career := range f.Careers {
		for _, hint := range CareerHints {
			if strings.Contains(career, hint.Substring) && contains(hint.Combinations, c.Code) {
				return careerFitText, true
			}
		}
	}
	return "", false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsCode(list []catalog.Code, v catalog.Code) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
