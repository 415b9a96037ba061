// Package rules contains the built-in herblint rules.
package rules

import (
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

const (
	categoryHerb   = "herb"
	categoryParser = "parser"
	categoryHTML   = "html"
	categoryERB    = "erb"
)

// All returns every built-in rule in registration order.
func All() []linter.Rule {
	return []linter.Rule{
		ParserNoErrors(),

		ERBCommentSyntax(),
		ERBNoEmptyTags(),
		ERBNoExtraNewline(),
		ERBNoExtraWhitespaceInsideTags(),
		ERBRequireTrailingNewline(),
		ERBRightTrim(),

		HerbDisableCommentMalformed(),
		HerbDisableCommentMissingRules(),
		HerbDisableCommentNoDuplicateRules(),
		HerbDisableCommentNoRedundantAll(),
		HerbDisableCommentUnnecessary(),
		HerbDisableCommentValidRuleName(),

		HTMLAttributeDoubleQuotes(),
		HTMLAttributeValuesRequireQuotes(),
		HTMLBodyOnlyElements(),
		HTMLBooleanAttributesNoValue(),
		HTMLHeadOnlyElements(),
		HTMLIframeHasTitle(),
		HTMLImgRequireAlt(),
		HTMLNoBlockInsideInline(),
		HTMLNoDuplicateAttributes(),
		HTMLNoEmptyAttributes(),
		HTMLNoNestedLinks(),
		HTMLNoSelfClosing(),
		HTMLNoUnderscoresInAttributeNames(),
		HTMLTagNameLowercase(),
	}
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *linter.Registry {
	return linter.NewRegistry().MustRegister(All()...)
}
