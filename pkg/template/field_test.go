package template_test

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formcontent/pkg/template"
)

func TestField_RenderPlainText(t *testing.T) {
	field := template.MustNew("Hello")

	got, err := field.Render(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello" {
		t.Fatalf("want %q, got %q", "Hello", got)
	}
	if field.Markdown() {
		t.Fatalf("single line source should not be markdown")
	}
}

func TestField_RenderVariables(t *testing.T) {
	field := template.MustNew("Answer for {{ brief.title }} on {{ lot }}")

	got, err := field.Render(map[string]any{
		"lot":   "digital-outcomes",
		"brief": map[string]any{"title": "Find an expert"},
		"extra": "ignored",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Answer for Find an expert on digital-outcomes"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestField_RenderEscapesValues(t *testing.T) {
	field := template.MustNew("Hello {{ name }}")

	got, err := field.Render(map[string]any{"name": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hello &lt;b&gt;x&lt;/b&gt;"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestField_RenderConditional(t *testing.T) {
	field := template.MustNew(`{% if lot == "lot-1" %}First{% else %}Other{% endif %}`)

	for lot, want := range map[string]string{"lot-1": "First", "lot-2": "Other"} {
		got, err := field.Render(map[string]any{"lot": lot})
		if err != nil {
			t.Fatalf("render %s: %v", lot, err)
		}
		if got != want {
			t.Fatalf("lot %s: want %q, got %q", lot, want, got)
		}
	}
}

func TestField_RenderLoopVariablesAreLocal(t *testing.T) {
	field := template.MustNew(`{% for item in items %}{{ item }}{% if not forloop.Last %},{% endif %}{% endfor %}`)

	got, err := field.Render(map[string]any{"items": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "a,b" {
		t.Fatalf("want %q, got %q", "a,b", got)
	}
}

func TestField_RenderUndefinedVariable(t *testing.T) {
	field := template.MustNew("Hello {{ name }}")

	_, err := field.Render(map[string]any{"other": "x"})
	if err == nil {
		t.Fatalf("expected error for undefined variable")
	}
	if !errors.Is(err, template.ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
	var tplErr *template.Error
	if !errors.As(err, &tplErr) {
		t.Fatalf("expected *template.Error, got %T", err)
	}
	if tplErr.Variable != "name" {
		t.Fatalf("want variable %q, got %q", "name", tplErr.Variable)
	}
}

func TestField_RenderUndefinedNestedKey(t *testing.T) {
	field := template.MustNew("{{ brief.title }}")

	_, err := field.Render(map[string]any{"brief": map[string]any{}})
	if !errors.Is(err, template.ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
}

func TestField_RenderUntakenBranchMayReferenceMissingKeys(t *testing.T) {
	field := template.MustNew(`{% if lot == "a" %}{{ brief.title }}{% else %}Generic{% endif %}`)
	brief := map[string]any{}

	got, err := field.Render(map[string]any{"lot": "b", "brief": brief})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Generic" {
		t.Fatalf("want %q, got %q", "Generic", got)
	}
	if len(brief) != 0 {
		t.Fatalf("render must not modify the context, got %v", brief)
	}

	_, err = field.Render(map[string]any{"lot": "a", "brief": brief})
	var tplErr *template.Error
	if !errors.As(err, &tplErr) {
		t.Fatalf("expected *template.Error, got %v", err)
	}
	if tplErr.Variable != "brief.title" {
		t.Fatalf("want variable %q, got %q", "brief.title", tplErr.Variable)
	}
}

func TestField_RenderConditionOnMissingKeyFails(t *testing.T) {
	field := template.MustNew(`{% if flag %}yes{% endif %}`)

	_, err := field.Render(nil)
	if !errors.Is(err, template.ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
}

func TestField_FilterNamesAreNotVariables(t *testing.T) {
	field := template.MustNew(`{{ name|upper }} {{ missing|default:"none" }}`)

	_, err := field.Render(map[string]any{"name": "x"})
	var tplErr *template.Error
	if !errors.As(err, &tplErr) {
		t.Fatalf("expected template error, got %v", err)
	}
	if tplErr.Variable != "missing" {
		t.Fatalf("want variable %q, got %q", "missing", tplErr.Variable)
	}

	got, err := field.Render(map[string]any{"name": "x", "missing": "y"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "X y" {
		t.Fatalf("want %q, got %q", "X y", got)
	}
}

func TestNew_SyntaxError(t *testing.T) {
	_, err := template.New("{% if %}")
	if !errors.Is(err, template.ErrTemplate) {
		t.Fatalf("expected ErrTemplate at construction, got %v", err)
	}
}

func TestNew_IncludeIsBanned(t *testing.T) {
	if _, err := template.New(`{% include "secrets.txt" %}`); err == nil {
		t.Fatalf("expected include to be rejected")
	}
}

func TestField_Markdown(t *testing.T) {
	field := template.MustNew("Hello {{ name }}\n\n* one\n* two")
	if !field.Markdown() {
		t.Fatalf("multi-line source should be markdown")
	}

	got, err := field.Render(map[string]any{"name": "World"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<p class=\"govuk-body\">Hello World</p>\n" +
		"<ul class=\"govuk-list govuk-list--bullet\">\n<li>one</li>\n<li>two</li>\n</ul>"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestField_MarkdownKeepsTemplateQuotes(t *testing.T) {
	field := template.MustNew(`Lot: {% if lot == "lot-1" %}first{% endif %}`, template.WithMarkdown(true))

	got, err := field.Render(map[string]any{"lot": "lot-1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<p class="govuk-body">Lot: first</p>`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestField_EqualityIsSourceEquality(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fields with the same source are equal", prop.ForAll(
		func(source string, name string) bool {
			a, errA := template.New(source)
			b, errB := template.New(source)
			if errA != nil || errB != nil {
				return true
			}
			_, _ = a.Render(map[string]any{"name": name})
			return a.Equal(b) && b.Equal(a)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("fields with different sources differ", prop.ForAll(
		func(a string, b string) bool {
			if a == b {
				return true
			}
			return !template.MustNew(a).Equal(template.MustNew(b))
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
