package rules

import (
	"github.com/spigell/subject-advisor/internal/catalog"
)

const (
	primaryPoints   = 4
	secondaryPoints = 2
	strengthPoints  = 3
	careerPoints    = 6
	bonusPoints     = 4
)

// PersonalityFavours maps a personality code to the combinations it favours.
var PersonalityFavours = map[catalog.Code][]string{
	catalog.Investigative: {catalog.KHTN1, catalog.KHTN2},
	catalog.Realistic:     {catalog.KHTN1, catalog.KHTN3},
	catalog.Social:        {catalog.KHXH1, catalog.KHXH2},
	catalog.Artistic:      {catalog.KHXH1},
	catalog.Enterprising:  {catalog.COBAN1, catalog.KHXH2},
	catalog.Conventional:  {catalog.KHTN3, catalog.COBAN1},
}

// CareerFavours maps an exact career label to the combinations it favours.
var CareerFavours = map[string][]string{
	"Kỹ thuật - Công nghệ":                {catalog.KHTN1, catalog.KHTN3},
	"Công nghệ thông tin":                 {catalog.KHTN3},
	"Y - Dược - Sinh học":                 {catalog.KHTN2},
	"Kinh tế - Quản trị - Marketing":      {catalog.COBAN1},
	"Khoa học Xã hội":                     {catalog.KHXH1},
	"Sư phạm":                             {catalog.KHXH1, catalog.COBAN1},
	"Luật sư, Nhà báo, Chuyên gia tâm lý": {catalog.KHXH1, catalog.KHXH2},
	"Nghệ thuật - Thiết kế":               {catalog.KHXH1},
}

// Bonus is a literal conjunction rewarded with extra points.
type Bonus struct {
	Primary     catalog.Code
	Career      string
	Subject     string
	Combination string
	Points      int
}

// Matches reports whether every part of the conjunction holds.
func (b Bonus) Matches(f Facts) bool {
	return f.Personality.Primary == b.Primary && f.HasCareer(b.Career) && f.HasStrong(b.Subject)
}

// SpecialBonuses are the perfect-match bonuses.
var SpecialBonuses = []Bonus{
	{
		Primary:     catalog.Investigative,
		Career:      "Y - Dược - Sinh học",
		Subject:     catalog.Biology,
		Combination: catalog.KHTN2,
		Points:      bonusPoints,
	},
	{
		Primary:     catalog.Realistic,
		Career:      "Công nghệ thông tin",
		Subject:     catalog.Informatic,
		Combination: catalog.KHTN3,
		Points:      bonusPoints,
	},
}

type personalityRule struct {
	favours map[catalog.Code][]string
}

// NewPersonality awards the combinations favoured by the primary and
// secondary personality codes.
func NewPersonality() Rule {
	return &personalityRule{favours: PersonalityFavours}
}

func (r *personalityRule) Name() string { return "personality" }

func (r *personalityRule) Apply(f Facts, s Scores) Step {
	var step Step
	for _, code := range r.favours[f.Personality.Primary] {
		step.record(code, s.add(code, primaryPoints))
	}
	for _, code := range r.favours[f.Personality.Secondary] {
		step.record(code, s.add(code, secondaryPoints))
	}
	return step
}

type strengthRule struct {
	combinations []catalog.Combination
}

// NewStrength awards every combination once per strong subject it contains.
func NewStrength(list []catalog.Combination) Rule {
	return &strengthRule{combinations: list}
}

func (r *strengthRule) Name() string { return "strength" }

func (r *strengthRule) Apply(f Facts, s Scores) Step {
	var step Step
	for _, c := range r.combinations {
		for _, subject := range f.Strong {
			if c.Has(subject) {
				step.record(c.Code, s.add(c.Code, strengthPoints))
			}
		}
	}
	return step
}

type careerRule struct {
	favours map[string][]string
}

// NewCareer awards combinations favoured by exactly matching career labels.
func NewCareer() Rule {
	return &careerRule{favours: CareerFavours}
}

func (r *careerRule) Name() string { return "career" }

func (r *careerRule) Apply(f Facts, s Scores) Step {
	var step Step
	for _, career := range f.Careers {
		for _, code := range r.favours[career] {
			step.record(code, s.add(code, careerPoints))
		}
	}
	return step
}

type specialComboRule struct {
	bonuses []Bonus
}

// NewSpecialCombo awards the literal perfect-match bonuses.
func NewSpecialCombo() Rule {
	return &specialComboRule{bonuses: SpecialBonuses}
}

func (r *specialComboRule) Name() string { return "special_combo" }

func (r *specialComboRule) Apply(f Facts, s Scores) Step {
	var step Step
	for _, b := range r.bonuses {
		if b.Matches(f) {
			step.record(b.Combination, s.add(b.Combination, b.Points))
		}
	}
	return step
}

func (s *Step) record(code string, points int) {
	if points == 0 {
		return
	}
	s.Awarded += points
	for _, c := range s.Touched {
		if c == code {
			return
		}
	}
	s.Touched = append(s.Touched, code)
}
