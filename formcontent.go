// Package formcontent resolves questionnaire content (manifests, sections,
// questions, messages) into the object model that drives form rendering,
// submission parsing, error mapping and answer summaries.
package formcontent

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formcontent/pkg/content"
	"github.com/goliatone/go-formcontent/pkg/contenterr"
	"github.com/goliatone/go-formcontent/pkg/formats"
	"github.com/goliatone/go-formcontent/pkg/loader"
	"github.com/goliatone/go-formcontent/pkg/questions"
	"github.com/goliatone/go-formcontent/pkg/render"
)

// Loader reads framework content from YAML files.
type Loader = loader.Loader

// LoaderOption configures a Loader.
type LoaderOption = loader.Option

// LoaderConfig selects the content directory and whether to watch it.
type LoaderConfig = loader.Config

// Manifest is an ordered list of sections.
type Manifest = content.Manifest

// Section groups the questions of one form page.
type Section = content.Section

// Question is a single schema defined question.
type Question = questions.Question

// Summary is a question bound to saved answers.
type Summary = questions.Summary

// Context is the mapping templates and dependencies are evaluated against.
type Context = questions.Context

// Data is parsed or saved answer data.
type Data = questions.Data

// PriceParts are the inputs of FormatPrice.
type PriceParts = formats.PriceParts

// Errors re-exported so callers only need the root package to match them.
var (
	ErrContentNotFound  = contenterr.ErrContentNotFound
	ErrQuestionNotFound = contenterr.ErrQuestionNotFound
	ErrContextRequired  = contenterr.ErrContextRequired
)

// NewLoader returns a loader over files, whose root holds frameworks/.
func NewLoader(files fs.FS, options ...LoaderOption) *Loader {
	return loader.New(files, options...)
}

// NewLoaderFromDir returns a loader over the content directory dir.
func NewLoaderFromDir(dir string, options ...LoaderOption) *Loader {
	return loader.NewFromDir(dir, options...)
}

// OpenLoader returns a loader for cfg. When cfg.Watch is set the cache is
// cleared as content files change until close is called or ctx is done.
func OpenLoader(ctx context.Context, cfg LoaderConfig, options ...LoaderOption) (*Loader, func() error, error) {
	return loader.Open(ctx, cfg, options...)
}

// NewManifest builds a numbered manifest from resolved section records.
func NewManifest(records []map[string]any) (*Manifest, error) {
	return content.NewManifest(records)
}

// NewSection builds a section from a resolved section record.
func NewSection(record map[string]any) (*Section, error) {
	return content.NewSection(record)
}

// NewQuestion builds a question from a resolved question record.
func NewQuestion(record map[string]any) (*Question, error) {
	return questions.FromRecord(record)
}

// FormatPrice renders a price range such as "£20 to £25 a unit a week".
func FormatPrice(parts PriceParts) (string, error) {
	return formats.FormatPrice(parts)
}

// SectionView loads a manifest, narrows it to ctx and returns the view of
// one of its sections. It is the shortest path from content on disk to the
// data a form template needs.
func SectionView(ctx context.Context, l *Loader, framework, questionSet, manifest, section string, filter Context, options ...render.Option) (render.Section, error) {
	if err := l.LoadManifest(ctx, framework, questionSet, manifest); err != nil {
		return render.Section{}, err
	}
	m, err := l.GetManifest(framework, manifest)
	if err != nil {
		return render.Section{}, err
	}
	m, err = m.FilterInPlace(filter)
	if err != nil {
		return render.Section{}, err
	}

	found := m.GetSection(section)
	if found == nil {
		return render.Section{}, contenterr.NotFound("no section %s in %s", section, manifest)
	}
	return render.FromSection(found, options...)
}
