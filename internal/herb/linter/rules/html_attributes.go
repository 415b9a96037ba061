package rules

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

// attributeVisitor calls check for every attribute with the path of the
// attribute node.
func attributeVisitor(check func(v *visitor, attr *ast.Attribute, path ast.Path)) *visitor {
	v := newVisitor()
	v.On(ast.KindAttribute, func(w *ast.Walker, n ast.Node) {
		check(v, n.(*ast.Attribute), w.Path())
	})
	return v
}

// literalContent joins the static parts of an attribute value.
func literalContent(v *ast.AttributeValue) string {
	s, _ := v.Static()
	return s
}

func attributeAt(doc *ast.Document, o linter.Offense) (*ast.Attribute, error) {
	fix, ok := o.Fix.(nodeFix)
	if !ok {
		return nil, linter.ErrNotFixable
	}
	return linter.Target[*ast.Attribute](doc, fix.Path)
}

type htmlAttributeDoubleQuotes struct{ linter.Meta }

// HTMLAttributeDoubleQuotes prefers double quotes around attribute values.
func HTMLAttributeDoubleQuotes() linter.Rule {
	return htmlAttributeDoubleQuotes{linter.Meta{
		RuleName: "html-attribute-double-quotes",
		Doc:      "Prefer double quotes around HTML attribute values",
		Group:    categoryHTML,
		Severity: linter.SeverityWarning,
	}}
}

func (htmlAttributeDoubleQuotes) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return attributeVisitor(func(v *visitor, attr *ast.Attribute, path ast.Path) {
		val := attr.Value
		if val == nil || !val.Quoted || val.OpenQuote.Value != "'" || val.CloseQuote.Value != "'" {
			return
		}
		if strings.Contains(literalContent(val), `"`) {
			return
		}
		name := attr.Name.Name.Value
		v.add(fmt.Sprintf("Attribute `%s` uses single quotes. Prefer double quotes for HTML attribute values: `%s=\"value\"`.", name, name),
			val.Loc(), nodeFix{path})
	}).run(doc)
}

func (htmlAttributeDoubleQuotes) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	attr, err := attributeAt(doc, o)
	if err != nil {
		return err
	}
	if attr.Value == nil || strings.Contains(literalContent(attr.Value), `"`) {
		return linter.ErrNotFixable
	}
	attr.Value.OpenQuote.Value = `"`
	attr.Value.CloseQuote.Value = `"`
	return nil
}

type htmlAttributeValuesRequireQuotes struct{ linter.Meta }

// HTMLAttributeValuesRequireQuotes requires attribute values to be quoted.
func HTMLAttributeValuesRequireQuotes() linter.Rule {
	return htmlAttributeValuesRequireQuotes{linter.Meta{
		RuleName: "html-attribute-values-require-quotes",
		Doc:      "Require quotes around HTML attribute values",
		Group:    categoryHTML,
	}}
}

func (htmlAttributeValuesRequireQuotes) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return attributeVisitor(func(v *visitor, attr *ast.Attribute, path ast.Path) {
		val := attr.Value
		if val == nil || val.Quoted || len(val.Nodes) == 0 {
			return
		}
		v.add(fmt.Sprintf("Attribute value should be quoted: %s=\"value\". Always wrap attribute values in quotes.", attr.Name.Name.Value),
			val.Loc(), nodeFix{path})
	}).run(doc)
}

func (htmlAttributeValuesRequireQuotes) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	attr, err := attributeAt(doc, o)
	if err != nil {
		return err
	}
	val := attr.Value
	if val == nil || val.Quoted {
		return linter.ErrNotFixable
	}
	quote := `"`
	if strings.Contains(literalContent(val), `"`) {
		quote = "'"
	}
	val.Quoted = true
	val.OpenQuote.Value = quote
	val.CloseQuote.Value = quote
	return nil
}

type htmlBooleanAttributesNoValue struct{ linter.Meta }

// HTMLBooleanAttributesNoValue disallows values on boolean attributes.
func HTMLBooleanAttributesNoValue() linter.Rule {
	return htmlBooleanAttributesNoValue{linter.Meta{
		RuleName: "html-boolean-attributes-no-value",
		Doc:      "Omit values for boolean HTML attributes",
		Group:    categoryHTML,
	}}
}

func (htmlBooleanAttributesNoValue) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return attributeVisitor(func(v *visitor, attr *ast.Attribute, path ast.Path) {
		name := attr.NameString()
		if attr.Value == nil || !booleanAttributes[name] {
			return
		}
		var fix any
		if _, static := attr.Value.Static(); static {
			fix = nodeFix{path}
		}
		v.add(fmt.Sprintf("Boolean attribute `%s` should not have a value. Use `%s` instead of `%s=\"%s\"`.", name, name, name, name),
			attr.Value.Loc(), fix)
	}).run(doc)
}

func (htmlBooleanAttributesNoValue) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	attr, err := attributeAt(doc, o)
	if err != nil {
		return err
	}
	attr.Equals = nil
	attr.Value = nil
	return nil
}

type htmlNoDuplicateAttributes struct{ linter.Meta }

// HTMLNoDuplicateAttributes disallows repeating an attribute on one tag.
func HTMLNoDuplicateAttributes() linter.Rule {
	return htmlNoDuplicateAttributes{linter.Meta{
		RuleName: "html-no-duplicate-attributes",
		Doc:      "Disallow duplicate attributes on a tag",
		Group:    categoryHTML,
	}}
}

func (htmlNoDuplicateAttributes) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	v.On(ast.KindOpenTag, func(_ *ast.Walker, n ast.Node) {
		seen := make(map[string]bool)
		for _, attr := range n.(*ast.OpenTag).Attributes() {
			name := attr.NameString()
			if seen[name] {
				v.add(fmt.Sprintf("Duplicate attribute `%s` found on tag. Remove the duplicate occurrence.", name), attr.Name.Loc(), nil)
			}
			seen[name] = true
		}
	})
	return v.run(doc)
}

type htmlNoEmptyAttributes struct{ linter.Meta }

var emptyRestricted = set("id", "class", "name", "for", "src", "href", "title", "data", "role")

// HTMLNoEmptyAttributes disallows blank values on attributes that need one.
func HTMLNoEmptyAttributes() linter.Rule {
	return htmlNoEmptyAttributes{linter.Meta{
		RuleName: "html-no-empty-attributes",
		Doc:      "Disallow empty values on attributes that require one",
		Group:    categoryHTML,
		Severity: linter.SeverityWarning,
	}}
}

func restrictedWhenEmpty(name string) bool {
	return emptyRestricted[name] || strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-")
}

func (htmlNoEmptyAttributes) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return attributeVisitor(func(v *visitor, attr *ast.Attribute, _ ast.Path) {
		name := attr.NameString()
		if !restrictedWhenEmpty(name) || attr.Value == nil {
			return
		}
		if value, static := attr.Value.Static(); !static || strings.TrimSpace(value) != "" {
			return
		}
		v.add(fmt.Sprintf("Attribute `%s` must not be empty. Either provide a meaningful value or remove the attribute entirely.", attr.Name.Name.Value),
			attr.Loc(), nil)
	}).run(doc)
}

type htmlNoUnderscoresInAttributeNames struct{ linter.Meta }

// HTMLNoUnderscoresInAttributeNames prefers hyphens in attribute names.
func HTMLNoUnderscoresInAttributeNames() linter.Rule {
	return htmlNoUnderscoresInAttributeNames{linter.Meta{
		RuleName: "html-no-underscores-in-attribute-names",
		Doc:      "Disallow underscores in HTML attribute names",
		Group:    categoryHTML,
		Severity: linter.SeverityWarning,
	}}
}

func (htmlNoUnderscoresInAttributeNames) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return attributeVisitor(func(v *visitor, attr *ast.Attribute, _ ast.Path) {
		name := attr.Name.Name.Value
		if strings.Contains(name, "_") {
			v.add(fmt.Sprintf("Attribute `%s` should not contain underscores. Use hyphens (-) instead.", name), attr.Name.Loc(), nil)
		}
	}).run(doc)
}
