package rules

import (
	"fmt"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

type parserNoErrors struct{ linter.Meta }

// ParserNoErrors reports syntax errors found by the parser.
func ParserNoErrors() linter.Rule {
	return parserNoErrors{linter.Meta{
		RuleName: linter.ParserNoErrors,
		Doc:      "Report parser errors in the template",
		Group:    categoryParser,
	}}
}

func (parserNoErrors) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	out := make([]linter.UnboundOffense, 0, len(doc.Errors))
	for _, err := range doc.Errors {
		out = append(out, linter.UnboundOffense{
			Message:  fmt.Sprintf("%s (`%s`)", err.Message, err.Kind),
			Location: err.Location,
		})
	}
	return out
}
