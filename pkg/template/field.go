package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formcontent/pkg/markdown"
)

// Field is a compiled, immutable template source. Two fields are equal when
// their sources are equal.
type Field struct {
	source   string
	markdown bool
	tpl      *pongo2.Template
	refs     [][]string
}

// FieldOption configures New.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	markdown *bool
}

// WithMarkdown forces or disables markdown conversion. Without it a source is
// treated as markdown when it spans more than one line.
func WithMarkdown(enabled bool) FieldOption {
	return func(cfg *fieldConfig) {
		cfg.markdown = &enabled
	}
}

// New compiles source. Syntax errors are reported here, not at render time.
func New(source string, options ...FieldOption) (*Field, error) {
	cfg := &fieldConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	isMarkdown := strings.Contains(source, "\n")
	if cfg.markdown != nil {
		isMarkdown = *cfg.markdown
	}

	compiled := source
	if isMarkdown {
		html, err := convertMarkdown(source)
		if err != nil {
			return nil, &Error{Source: source, Err: err}
		}
		compiled = html
	}

	set, err := sandboxSet()
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}
	tpl, err := set.FromString(compiled)
	if err != nil {
		return nil, &Error{Source: source, Err: fmt.Errorf("compile: %w", err)}
	}

	return &Field{
		source:   source,
		markdown: isMarkdown,
		tpl:      tpl,
		refs:     scanReferences(compiled),
	}, nil
}

// MustNew is New for sources known at compile time. It panics on error.
func MustNew(source string, options ...FieldOption) *Field {
	field, err := New(source, options...)
	if err != nil {
		panic(err)
	}
	return field
}

// Source returns the original, unconverted text.
func (f *Field) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Markdown reports whether the source was converted from markdown.
func (f *Field) Markdown() bool {
	return f != nil && f.markdown
}

// String returns the source so fields print like the text they came from.
func (f *Field) String() string {
	return f.Source()
}

// Equal compares sources.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.source == other.source
}

// Render evaluates the field against ctx. A nil context is an empty one.
// A variable is only required when the expression that reads it is
// evaluated, so references inside untaken branches may be absent. Extra keys
// are ignored.
func (f *Field) Render(ctx map[string]any) (string, error) {
	if f == nil || f.tpl == nil {
		return "", nil
	}

	exec := executionContext(ctx)
	var undefined []string
	for _, ref := range f.refs {
		if defined(ctx, ref) {
			continue
		}
		name := strings.Join(ref, ".")
		bindUndefined(exec, ref, func() (*pongo2.Value, error) {
			undefined = append(undefined, name)
			return nil, fmt.Errorf("%q is undefined", name)
		})
	}

	out, err := f.tpl.Execute(exec)
	if len(undefined) > 0 {
		return "", &Error{Source: f.source, Variable: undefined[0]}
	}
	if err != nil {
		return "", &Error{Source: f.source, Err: fmt.Errorf("render: %w", err)}
	}
	return out, nil
}

// bindUndefined places fn at path inside ctx. pongo2 calls function values
// when it resolves them, so fn only runs if the template reads the path.
// Maps along the path are copied; the caller's data is never modified.
func bindUndefined(ctx pongo2.Context, path []string, fn func() (*pongo2.Value, error)) {
	if len(path) == 0 || !identifierPattern.MatchString(path[0]) {
		return
	}
	var current map[string]any = ctx
	for _, segment := range path[:len(path)-1] {
		value, exists := current[segment]
		next := map[string]any{}
		if exists {
			fields, ok := stringMap(value)
			if !ok {
				return
			}
			for k, v := range fields {
				next[k] = v
			}
		}
		current[segment] = next
		current = next
	}
	current[path[len(path)-1]] = fn
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// pongo2 rejects contexts with keys that are not identifiers. Such keys can
// never be referenced by a template so they are dropped.
func executionContext(ctx map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(ctx))
	for key, value := range ctx {
		if identifierPattern.MatchString(key) {
			out[key] = value
		}
	}
	return out
}

var templateTagPattern = regexp.MustCompile(`(?s)\{\{.*?\}\}|\{%.*?%\}`)

// convertMarkdown shields template tags from the markdown parser, which would
// otherwise escape the quotes and operators inside them.
func convertMarkdown(source string) (string, error) {
	var tags []string
	shielded := templateTagPattern.ReplaceAllStringFunc(source, func(tag string) string {
		tags = append(tags, tag)
		return placeholder(len(tags) - 1)
	})

	html, err := markdown.Convert(shielded)
	if err != nil {
		return "", err
	}
	for i := len(tags) - 1; i >= 0; i-- {
		html = strings.ReplaceAll(html, placeholder(i), tags[i])
	}
	return html, nil
}

func placeholder(index int) string {
	return fmt.Sprintf("fctemplatetag%dend", index)
}
