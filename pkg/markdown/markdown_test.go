package markdown_test

import (
	"testing"

	"github.com/goliatone/go-formcontent/pkg/markdown"
)

func TestConvert_AddsGOVUKClasses(t *testing.T) {
	source := "## A Heading\n\n" +
		"Some paragraph\n\n" +
		" * Some\n" +
		" * List\n\n" +
		"And\n\n" +
		"1. Some other\n" +
		"2. [Ordered](http://example.com)\n" +
		"3. List & such"

	got, err := markdown.Convert(source)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := `<h2 class="govuk-heading-m">A Heading</h2>
<p class="govuk-body">Some paragraph</p>
<ul class="govuk-list govuk-list--bullet">
<li>Some</li>
<li>List</li>
</ul>
<p class="govuk-body">And</p>
<ol class="govuk-list govuk-list--number">
<li>Some other</li>
<li><a href="http://example.com" class="govuk-link">Ordered</a></li>
<li>List &amp; such</li>
</ol>`
	if got != want {
		t.Fatalf("markdown mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestConvert_LeavesRawHTML(t *testing.T) {
	source := `<a href="#" target="_blank" rel="noopener noreferrer">link (opens in new tab)</a>`

	got, err := markdown.Convert(source)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := `<p class="govuk-body"><a href="#" target="_blank" rel="noopener noreferrer">link (opens in new tab)</a></p>`
	if got != want {
		t.Fatalf("markdown mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestConverter_WithClasses(t *testing.T) {
	conv := markdown.NewConverter(markdown.WithClasses(map[string]string{"p": "lede"}))

	got, err := conv.Convert("Hello *world*")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if want := `<p class="lede">Hello <em>world</em></p>`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
