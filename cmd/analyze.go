package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/advisor"
	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/survey"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <survey.json>",
	Short: "Analyse a survey stored in a JSON file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func analyze(cmd *cobra.Command, path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	res, err := readSurveyFile(path)
	if err != nil {
		logger.Fatal("reading the survey", zap.Error(err), zap.String("file", path))
	}

	analysis := advisor.New(logger.Named("advisor")).Analyze(res)

	format, _ := cmd.Flags().GetString("output")
	if err := writeAnalysis(cmd.OutOrStdout(), analysis, format); err != nil {
		logger.Fatal("printing the analysis", zap.Error(err))
	}
}

func readSurveyFile(path string) (survey.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return survey.Result{}, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return survey.Result{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return survey.Decode(raw)
}
