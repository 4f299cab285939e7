package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/advisor"
	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/store"
	"github.com/spigell/subject-advisor/internal/survey"
)

const (
	PromptYes  = "Có"
	PromptNo   = "Không"
	PromptDone = "Xong"
)

var errEmptyName = errors.New("họ và tên không được để trống")

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Fill in the survey interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		runSurvey(cmd)
	},
}

func init() {
	rootCmd.AddCommand(surveyCmd)

	surveyCmd.Flags().BoolP("save", "s", false, "store the result without asking")
}

func runSurvey(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	student, err := askStudent()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	res, err := askSurvey()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	analysis := advisor.New(logger.Named("advisor")).Analyze(res)
	if err := writeAnalysis(cmd.OutOrStdout(), analysis, outputText); err != nil {
		logger.Fatal("printing the analysis", zap.Error(err))
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		save, err = confirm("Lưu kết quả?")
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
	if !save {
		return
	}

	st, err := store.Open(config.Store.Path)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err), zap.String("path", config.Store.Path))
	}
	defer st.Close()

	id, err := st.Append(ctx, store.NewSubmission(student, analysis, time.Now()))
	if err != nil {
		logger.Fatal("saving the submission", zap.Error(err))
	}

	logger.Info("submission saved", zap.Int64("id", id), zap.String("path", config.Store.Path))
}

func askStudent() (store.Student, error) {
	var (
		student store.Student
		err     error
	)

	name := promptui.Prompt{
		Label: "Họ và tên",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errEmptyName
			}
			return nil
		},
	}
	if student.FullName, err = name.Run(); err != nil {
		return student, err
	}

	class := promptui.Prompt{Label: "Lớp"}
	if student.Class, err = class.Run(); err != nil {
		return student, err
	}

	student.FullName = strings.TrimSpace(student.FullName)
	student.Class = strings.TrimSpace(student.Class)

	return student, nil
}

func askSurvey() (survey.Result, error) {
	res := survey.Result{
		SubjectRatings:     map[string]int{},
		PersonalityAnswers: map[string][]string{},
	}

	ratings := make([]string, 0, len(ratingChoices))
	for _, r := range ratingChoices {
		ratings = append(ratings, strconv.Itoa(r))
	}

	for _, subject := range catalog.Subjects {
		p := promptui.Select{
			Label: fmt.Sprintf("Câu 1. Năng lực môn %s", subject),
			Items: ratings,
		}
		_, selected, err := p.Run()
		if err != nil {
			return res, err
		}
		res.SubjectRatings[subject], _ = strconv.Atoi(selected)
	}

	for i, q := range catalog.Questions {
		label := fmt.Sprintf("Câu %d. %s", i+2, q.Prompt)
		texts := make([]string, 0, len(q.Answers))
		for _, a := range q.Answers {
			texts = append(texts, a.Text)
		}

		var (
			answers []string
			err     error
		)
		if q.Multi {
			answers, err = selectMany(label, texts)
		} else {
			answers, err = selectOne(label, texts)
		}
		if err != nil {
			return res, err
		}
		res.PersonalityAnswers[q.ID] = answers
	}

	careers, err := selectMany("Câu 5. Nhóm ngành nghề quan tâm", catalog.CareerLabels)
	if err != nil {
		return res, err
	}
	res.CareerInterests = careers

	return res, nil
}

var ratingChoices = []int{1, 2, 3, 4, 5}

func selectOne(label string, items []string) ([]string, error) {
	p := promptui.Select{Label: label, Items: items}
	_, selected, err := p.Run()
	if err != nil {
		return nil, err
	}
	return []string{selected}, nil
}

// selectMany asks repeatedly until PromptDone is chosen. Picked items are
// removed from the list.
func selectMany(label string, items []string) ([]string, error) {
	left := append([]string(nil), items...)
	var picked []string

	for len(left) > 0 {
		p := promptui.Select{
			Label: label,
			Items: append(append([]string(nil), left...), PromptDone),
		}

		idx, selected, err := p.Run()
		if err != nil {
			return nil, err
		}
		if selected == PromptDone {
			break
		}

		picked = append(picked, selected)
		left = append(left[:idx], left[idx+1:]...)
	}

	return picked, nil
}

func confirm(label string) (bool, error) {
	p := promptui.Select{Label: label, Items: []string{PromptYes, PromptNo}}
	_, selected, err := p.Run()
	if err != nil {
		return false, err
	}
	return selected == PromptYes, nil
}
