// Package catalog holds the read-only reference data used by the advisor:
// the subject vocabulary, the subject combinations, personality codes and
// the survey question bank.
package catalog

import (
	"errors"
	"fmt"
)

// Combination is a named set of subjects a student can be recommended.
type Combination struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Subjects    []string `json:"subjects"`
	Description string   `json:"description"`
}

// Has reports whether subject belongs to the combination.
func (c Combination) Has(subject string) bool {
	for _, s := range c.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Subject names as they appear in the survey form.
const (
	Math       = "Toán"
	Literature = "Ngữ văn"
	English    = "Ngoại ngữ"
	Physics    = "Lý"
	Chemistry  = "Hóa"
	Biology    = "Sinh"
	Informatic = "Tin học"
	History    = "Lịch sử"
	Geography  = "Địa lí"
	EconLaw    = "GD Kinh tế & Pháp luật"
)

// Subjects is the fixed vocabulary in display order.
var Subjects = []string{
	Math, Literature, English, Physics, Chemistry, Biology, Informatic, History, Geography, EconLaw,
}

// Combination codes.
const (
	KHTN1  = "KHTN_1"
	KHTN2  = "KHTN_2"
	KHTN3  = "KHTN_3"
	KHXH1  = "KHXH_1"
	KHXH2  = "KHXH_2"
	COBAN1 = "COBAN_1"
)

// Combinations is the catalog in declaration order. The order is significant:
// combinations with equal scores are ranked in this order.
var Combinations = []Combination{
	{
		Code:        KHTN1,
		Name:        "Toán - Lý - Hóa",
		Subjects:    []string{Math, Physics, Chemistry},
		Description: "Phù hợp với khối ngành kỹ thuật, công nghệ, khoa học tự nhiên.",
	},
	{
		Code:        KHTN2,
		Name:        "Toán - Hóa - Sinh",
		Subjects:    []string{Math, Chemistry, Biology},
		Description: "Phù hợp với khối ngành Y - Dược, công nghệ sinh học, hóa học.",
	},
	{
		Code:        KHTN3,
		Name:        "Toán - Lý - Tin",
		Subjects:    []string{Math, Physics, Informatic},
		Description: "Phù hợp với khối ngành Công nghệ thông tin, Tự động hóa, AI.",
	},
	{
		Code:        KHXH1,
		Name:        "Văn - Sử - Địa",
		Subjects:    []string{Literature, History, Geography},
		Description: "Phù hợp với khối ngành khoa học xã hội, báo chí, du lịch, sư phạm.",
	},
	{
		Code:        KHXH2,
		Name:        "Văn - Anh - GD KT&PL",
		Subjects:    []string{Literature, English, EconLaw},
		Description: "Phù hợp với khối ngành Luật, Quan hệ công chúng, Truyền thông.",
	},
	{
		Code:        COBAN1,
		Name:        "Toán - Văn - Anh",
		Subjects:    []string{Math, Literature, English},
		Description: "Tổ hợp có tính ứng dụng rộng, phù hợp với các ngành Kinh tế, Quản trị, Marketing.",
	},
}

// Find returns the combination with the given code from list.
func Find(list []Combination, code string) (Combination, bool) {
	for _, c := range list {
		if c.Code == code {
			return c, true
		}
	}
	return Combination{}, false
}

// Validate checks that every combination has a unique code and one to three
// distinct subjects from the vocabulary.
func Validate(list []Combination) error {
	known := make(map[string]struct{}, len(Subjects))
	for _, s := range Subjects {
		known[s] = struct{}{}
	}

	codes := make(map[string]struct{}, len(list))
	for _, c := range list {
		if c.Code == "" {
			return errors.New("combination code is empty")
		}
		if _, dup := codes[c.Code]; dup {
			return fmt.Errorf("duplicate combination code %q", c.Code)
		}
		codes[c.Code] = struct{}{}

		if len(c.Subjects) == 0 || len(c.Subjects) > 3 {
			return fmt.Errorf("combination %s: expected 1-3 subjects, got %d", c.Code, len(c.Subjects))
		}

		seen := make(map[string]struct{}, len(c.Subjects))
		for _, s := range c.Subjects {
			if _, ok := known[s]; !ok {
				return fmt.Errorf("combination %s: unknown subject %q", c.Code, s)
			}
			if _, dup := seen[s]; dup {
				return fmt.Errorf("combination %s: duplicate subject %q", c.Code, s)
			}
			seen[s] = struct{}{}
		}
	}

	return nil
}
