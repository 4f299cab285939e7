package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored submissions",
	Run: func(cmd *cobra.Command, _ []string) {
		history(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 50, "how many latest submissions to show")
	historyCmd.Flags().Bool("dump", false, "dump submissions to a temporary JSON file")
}

func history(cmd *cobra.Command) {
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

	st, err := store.Open(config.Store.Path)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err), zap.String("path", config.Store.Path))
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	subs, err := st.List(ctx, limit)
	if err != nil {
		logger.Fatal("listing submissions", zap.Error(err))
	}

	logger.Info("getting submissions", zap.Int("count", len(subs)))

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := store.DumpToTmpFile(subs)
		if err != nil {
			logger.Fatal("dump submissions to file", zap.Error(err))
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return
	}

	out := cmd.OutOrStdout()
	for _, sub := range subs {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n",
			sub.ID,
			sub.CreatedAt.Local().Format(time.DateTime),
			sub.Student.FullName,
			sub.Student.Class,
			strings.Join(nonEmptySuggestions(sub.Suggestions), " | "),
		)
	}
}

func nonEmptySuggestions(s [3]string) []string {
	out := make([]string, 0, len(s))
	for _, name := range s {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
