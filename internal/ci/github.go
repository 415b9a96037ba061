package ci

import (
	"fmt"
	"io"
	"os"

	"github.com/albertocavalcante/herb/internal/herb/linter"
	"github.com/albertocavalcante/herb/internal/sortutil"
)

// WriteGitHubArtifacts appends a Markdown summary to $GITHUB_STEP_SUMMARY
// and offense counts to $GITHUB_OUTPUT. Unset variables are skipped.
func WriteGitHubArtifacts(getenv func(string) string, result *linter.RunResult) error {
	if path := getenv("GITHUB_STEP_SUMMARY"); path != "" {
		if err := appendTo(path, func(w io.Writer) { writeSummary(w, result) }); err != nil {
			return fmt.Errorf("writing step summary: %w", err)
		}
	}
	if path := getenv("GITHUB_OUTPUT"); path != "" {
		if err := appendTo(path, func(w io.Writer) { writeOutputs(w, result) }); err != nil {
			return fmt.Errorf("writing outputs: %w", err)
		}
	}
	return nil
}

func appendTo(path string, write func(io.Writer)) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	write(f)
	return f.Close()
}

type ruleCount struct {
	rule  string
	count int
}

func writeSummary(w io.Writer, result *linter.RunResult) {
	icon := "✅"
	if !result.Clean() {
		icon = "❌"
	}
	fmt.Fprintf(w, "## %s Herb Lint Results\n\n", icon)

	fmt.Fprintln(w, "| Status | Count |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| Errors | %d |\n", result.ErrorCount())
	fmt.Fprintf(w, "| Warnings | %d |\n", result.WarningCount())
	if fixed := result.FixedCount(); fixed > 0 {
		fmt.Fprintf(w, "| Fixed | %d |\n", fixed)
	}
	fmt.Fprintf(w, "| Files with offenses | %d |\n", result.FilesWithOffenses())
	fmt.Fprintf(w, "| **Files checked** | **%d** |\n", len(result.Files)+len(result.Errors))
	fmt.Fprintln(w)

	counts := map[string]int{}
	for _, o := range result.Offenses() {
		counts[o.Code]++
	}
	if len(counts) > 0 {
		rows := make([]ruleCount, 0, len(counts))
		for rule, n := range counts {
			rows = append(rows, ruleCount{rule, n})
		}
		sortutil.ByName(rows, func(r ruleCount) string { return r.rule })
		sortutil.Desc(rows, func(r ruleCount) int { return r.count })

		fmt.Fprintln(w, "<details>")
		fmt.Fprintln(w, "<summary>Offenses by rule</summary>")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Rule | Offenses |")
		fmt.Fprintln(w, "|------|----------|")
		for _, r := range rows {
			fmt.Fprintf(w, "| %s | %d |\n", r.rule, r.count)
		}
		fmt.Fprintln(w, "</details>")
		fmt.Fprintln(w)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintln(w, "<details>")
		fmt.Fprintln(w, "<summary>Files that could not be processed</summary>")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "```")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "%s: %v\n", e.Path, e.Err)
		}
		fmt.Fprintln(w, "```")
		fmt.Fprintln(w, "</details>")
	}
}

func writeOutputs(w io.Writer, result *linter.RunResult) {
	fmt.Fprintf(w, "errors=%d\n", result.ErrorCount())
	fmt.Fprintf(w, "warnings=%d\n", result.WarningCount())
	fmt.Fprintf(w, "files=%d\n", len(result.Files)+len(result.Errors))
}
