package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/catalog"
	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/recommend"
	"github.com/spigell/subject-advisor/internal/store"
	"github.com/spigell/subject-advisor/internal/survey"
)

var ratingScale = []int{1, 2, 3, 4, 5}

type resultPage struct {
	Student    store.Student
	Analysis   recommend.Analysis
	Commentary string
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Combinations": catalog.Combinations,
	})
}

func (s *Server) surveyForm(c *gin.Context) {
	c.HTML(http.StatusOK, "survey.html", gin.H{
		"Subjects":  catalog.Subjects,
		"Ratings":   ratingScale,
		"Questions": catalog.Questions,
		"Careers":   catalog.CareerLabels,
	})
}

func (s *Server) result(c *gin.Context) {
	var student store.Student
	if err := c.ShouldBind(&student); err != nil {
		s.incomplete(c, &IncompleteError{Err: err})
		return
	}
	if err := s.validate.Struct(student); err != nil {
		s.incomplete(c, &IncompleteError{Err: validationError(err)})
		return
	}

	res, err := collectSurvey(c.Request.PostForm)
	if err != nil {
		s.incomplete(c, err)
		return
	}

	log := logger.WithFields(s.logger, logger.SubmissionFields(student.FullName, student.Class)...)

	analysis := s.advisor.Analyze(res)
	log.Info("survey analysed", zap.Strings("recommendations", analysis.Names()))

	if s.recorder != nil {
		sub := store.NewSubmission(student, analysis, s.now())
		if id, err := s.recorder.Append(c.Request.Context(), sub); err != nil {
			log.Error("saving submission", zap.Error(err))
		} else {
			log.Debug("submission saved", zap.Int64("id", id))
		}
	}

	c.HTML(http.StatusOK, "result.html", resultPage{
		Student:    student,
		Analysis:   analysis,
		Commentary: s.commentary(c.Request.Context(), log, res, analysis),
	})
}

func (s *Server) apiAnalyze(c *gin.Context) {
	var res survey.Result
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for subject, rating := range res.SubjectRatings {
		if rating < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("rating of %s is negative", subject)})
			return
		}
	}

	c.JSON(http.StatusOK, s.advisor.Analyze(res))
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// commentary asks the narrator for a short text. Failures only cost the
// commentary, never the page.
func (s *Server) commentary(ctx context.Context, log *zap.Logger, res survey.Result, a recommend.Analysis) string {
	if s.narrator == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.AITimeout)
	defer cancel()

	out, err := s.narrator.Narrate(ctx, res, a)
	if err != nil {
		log.Warn("ai commentary failed", zap.Error(err))
		return ""
	}
	return out.Text
}

func (s *Server) incomplete(c *gin.Context, err error) {
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		inc = &IncompleteError{Err: err}
	}

	s.logger.Info("incomplete submission", zap.Error(inc))
	c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": inc.Message()})
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("field %s failed %q validation", fe.Field(), fe.Tag())
}
