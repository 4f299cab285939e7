package server

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/subject-advisor/internal/catalog"
)

func TestCollectSurvey(t *testing.T) {
	form := url.Values{}
	form.Set("ho_ten", "A")
	form.Set("mon_"+catalog.Math, " 5 ")
	form.Set("mon_"+catalog.Biology, "3")
	form.Set("mon_", "4")
	form[catalog.QuestionHobbies] = []string{"x", " ", "y"}
	form[catalog.QuestionProblem] = []string{"first", "second"}
	form[careersField] = []string{"Y tế - Sức khỏe", ""}

	res, err := collectSurvey(form)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{catalog.Math: 5, catalog.Biology: 3}, res.SubjectRatings)
	assert.Equal(t, []string{"x", "y"}, res.PersonalityAnswers[catalog.QuestionHobbies])
	assert.Equal(t, []string{"first"}, res.PersonalityAnswers[catalog.QuestionProblem])
	assert.NotContains(t, res.PersonalityAnswers, catalog.QuestionEnvironment)
	assert.Equal(t, []string{"Y tế - Sức khỏe"}, res.CareerInterests)
}

func TestCollectSurveyRejectsBadRatings(t *testing.T) {
	for _, value := range []string{"", "abc", "-2", "4.5"} {
		form := url.Values{}
		form.Set("mon_"+catalog.Math, value)

		_, err := collectSurvey(form)

		var inc *IncompleteError
		require.True(t, errors.As(err, &inc), "value %q", value)
		assert.Equal(t, "mon_"+catalog.Math, inc.Field)
		assert.True(t, strings.HasPrefix(inc.Message(), incompleteMsg))
	}
}
