// Package markdown converts multi-line content fields to HTML, tagging the
// generated paragraphs, lists, links and headings with GOV.UK Frontend
// classes. Raw HTML embedded in the source is passed through untouched.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// GOVUKFrontendClasses maps generated element names to the classes appended
// to them. Manually written HTML is not affected.
var GOVUKFrontendClasses = map[string]string{
	"p":  "govuk-body",
	"ul": "govuk-list govuk-list--bullet",
	"ol": "govuk-list govuk-list--number",
	"a":  "govuk-link",
	"h2": "govuk-heading-m",
	"h3": "govuk-heading-s",
}

// Option configures a Converter.
type Option func(*config)

type config struct {
	classes map[string]string
}

// WithClasses replaces the element → class mapping.
func WithClasses(classes map[string]string) Option {
	return func(cfg *config) {
		cfg.classes = make(map[string]string, len(classes))
		for tag, class := range classes {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			cfg.classes[tag] = strings.TrimSpace(class)
		}
	}
}

// Converter renders markdown sources into HTML fragments.
type Converter struct {
	md goldmark.Markdown
}

var defaultConverter = NewConverter()

// NewConverter builds a Converter. Without options it uses
// GOVUKFrontendClasses.
func NewConverter(options ...Option) *Converter {
	cfg := &config{classes: GOVUKFrontendClasses}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&classTransformer{classes: cfg.classes}, 100),
			),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Converter{md: md}
}

// Convert renders source to HTML without the trailing newline.
func (c *Converter) Convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Convert renders source with the default GOV.UK Frontend converter.
func Convert(source string) (string, error) {
	return defaultConverter.Convert(source)
}

type classTransformer struct {
	classes map[string]string
}

func (t *classTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	if len(t.classes) == 0 {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if class := t.classes[elementName(n)]; class != "" {
			appendClass(n, class)
		}
		return ast.WalkContinue, nil
	})
}

func elementName(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Paragraph:
		return "p"
	case *ast.List:
		if node.IsOrdered() {
			return "ol"
		}
		return "ul"
	case *ast.Link:
		return "a"
	case *ast.Heading:
		return fmt.Sprintf("h%d", node.Level)
	default:
		return ""
	}
}

func appendClass(n ast.Node, class string) {
	if existing, ok := n.AttributeString("class"); ok {
		var current string
		switch v := existing.(type) {
		case []byte:
			current = string(v)
		case string:
			current = v
		}
		if current = strings.TrimSpace(current); current != "" {
			class = current + " " + class
		}
	}
	n.SetAttributeString("class", []byte(class))
}
