package herblint

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/herb/internal/cli"
	"github.com/albertocavalcante/herb/internal/herb/linter"
	"github.com/albertocavalcante/herb/internal/herb/linter/rules"
	"github.com/albertocavalcante/herb/internal/version"
)

func newRulesCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List all available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRules(cmd.OutOrStdout(), rules.NewRegistry(), category)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list rules in this category")
	return cmd
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <rule>",
		Short: "Show details for a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return explainRule(cmd.OutOrStdout(), rules.NewRegistry(), args[0])
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cli.Writef(cmd.OutOrStdout(), "herblint %s\n", version.String())
		},
	}
}

// listRules outputs the registered rules grouped by category.
func listRules(w io.Writer, registry *linter.Registry, only string) error {
	categories := registry.Categories()
	if only != "" {
		if len(registry.RulesByCategory(only)) == 0 {
			return fmt.Errorf("unknown category %q (valid: %s)", only, strings.Join(categories, ", "))
		}
		categories = []string{only}
	} else {
		cli.Writef(w, "Available rules (%d total):\n\n", len(registry.AllRules()))
	}

	for _, cat := range categories {
		catRules := registry.RulesByCategory(cat)
		cli.Writef(w, "%s (%d rules):\n", cat, len(catRules))
		for _, rule := range catRules {
			cli.Writef(w, "  %-44s %-9s %s\n", rule.Name(), ruleTags(rule), rule.Description())
		}
		cli.Writeln(w)
	}
	cli.Writeln(w, "[fix] autocorrectable with --fix, [off] disabled by default")
	return nil
}

func ruleTags(rule linter.Rule) string {
	var tags []string
	if linter.Autocorrectable(rule) {
		tags = append(tags, "[fix]")
	}
	if !rule.DefaultConfig().Enabled {
		tags = append(tags, "[off]")
	}
	return strings.Join(tags, "")
}

// explainRule prints everything known about one rule.
func explainRule(w io.Writer, registry *linter.Registry, name string) error {
	rule, ok := registry.Rule(name)
	if !ok {
		msg := fmt.Sprintf("unknown rule %q", name)
		if s, ok := linter.Suggest(name, registry.Names()); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return fmt.Errorf("%s", msg)
	}

	def := rule.DefaultConfig()
	cli.Writef(w, "%s\n\n", rule.Name())
	cli.Writef(w, "  %s\n\n", rule.Description())
	cli.Writef(w, "  Category:    %s\n", rule.Category())
	cli.Writef(w, "  Severity:    %s\n", def.Severity)
	cli.Writef(w, "  Enabled:     %s\n", yesNo(def.Enabled))
	cli.Writef(w, "  Autofix:     %s\n", yesNo(linter.Autocorrectable(rule)))
	if len(def.Include) > 0 {
		cli.Writef(w, "  Include:     %s\n", strings.Join(def.Include, ", "))
	}
	cli.Writeln(w)
	cli.Writef(w, "  Suppress with: <%%# herb:disable %s %%>\n", rule.Name())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
