package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/survey"
)

const (
	ratingPrefix  = "mon_"
	careersField  = "cau5"
	incompleteMsg = "Đã xảy ra lỗi, có thể bạn đã bỏ sót một câu hỏi nào đó. Vui lòng quay lại và thử lại. Lỗi: "
)

// IncompleteError reports a submission the form collector could not accept.
type IncompleteError struct {
	Field string
	Err   error
}

func (e *IncompleteError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *IncompleteError) Unwrap() error { return e.Err }

// Message is the text shown to the student.
func (e *IncompleteError) Message() string {
	return incompleteMsg + e.Error()
}

// collectSurvey turns the posted form into a typed survey result. Ratings
// are read from every mon_<subject> field, personality answers from the
// known question ids and career interests from cau5.
func collectSurvey(form url.Values) (survey.Result, error) {
	res := survey.Result{
		SubjectRatings:     map[string]int{},
		PersonalityAnswers: map[string][]string{},
	}

	for key, values := range form {
		if !strings.HasPrefix(key, ratingPrefix) {
			continue
		}

		subject := strings.TrimSpace(strings.TrimPrefix(key, ratingPrefix))
		if subject == "" || len(values) == 0 {
			continue
		}

		rating, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return survey.Result{}, &IncompleteError{Field: key, Err: fmt.Errorf("rating %q is not a number", values[0])}
		}
		if rating < 0 {
			return survey.Result{}, &IncompleteError{Field: key, Err: fmt.Errorf("rating %d is negative", rating)}
		}

		res.SubjectRatings[subject] = rating
	}

	for _, q := range catalog.Questions {
		answers := nonEmpty(form[q.ID])
		if !q.Multi && len(answers) > 1 {
			answers = answers[:1]
		}
		if len(answers) > 0 {
			res.PersonalityAnswers[q.ID] = answers
		}
	}

	res.CareerInterests = nonEmpty(form[careersField])

	return res, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
