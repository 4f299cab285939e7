package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/subject-advisor/internal/recommend"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func writeAnalysis(w io.Writer, a recommend.Analysis, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputText:
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	var b strings.Builder
	b.WriteString("Phân tích:\n")
	for _, line := range a.Lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	b.WriteString("\nGợi ý tổ hợp môn:\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&b, "\n%s: %s (điểm: %d)\n", r.Rank, r.Name, r.Score)
		fmt.Fprintf(&b, "  Các môn: %s\n", r.Subjects)
		fmt.Fprintf(&b, "  %s\n", r.Reason)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
