package content

import (
	"fmt"

	"github.com/goliatone/go-formcontent/pkg/formdata"
	"github.com/goliatone/go-formcontent/pkg/questions"
)

// Manifest is an ordered set of sections. Top level questions are numbered
// from 1 across all sections.
type Manifest struct {
	sections []*Section
}

// NewManifest decodes section records into a manifest.
func NewManifest(records []map[string]any) (*Manifest, error) {
	sections := make([]*Section, 0, len(records))
	for i, record := range records {
		section, err := NewSection(record)
		if err != nil {
			return nil, fmt.Errorf("content: manifest section %d: %w", i, err)
		}
		sections = append(sections, section)
	}
	return newManifest(sections), nil
}

// ManifestFromSections builds a manifest from copies of sections.
func ManifestFromSections(sections ...*Section) *Manifest {
	copies := make([]*Section, 0, len(sections))
	for _, section := range sections {
		if section != nil {
			copies = append(copies, section.Copy())
		}
	}
	return newManifest(copies)
}

func newManifest(sections []*Section) *Manifest {
	m := &Manifest{sections: sections}
	m.assignQuestionNumbers()
	return m
}

func (m *Manifest) assignQuestionNumbers() {
	number := 0
	for _, section := range m.sections {
		for _, question := range section.questions {
			number++
			question.SetNumber(number)
		}
	}
}

// Sections returns the sections in order.
func (m *Manifest) Sections() []*Section { return m.sections }

// Copy returns an independent copy of the manifest.
func (m *Manifest) Copy() *Manifest {
	return ManifestFromSections(m.sections...)
}

// GetSection returns the section with slug id, or nil.
func (m *Manifest) GetSection(id string) *Section {
	for _, section := range m.sections {
		if section.ID() == id {
			return section
		}
	}
	return nil
}

// GetQuestion finds the question that owns fieldID in any section.
func (m *Manifest) GetQuestion(fieldID string) *questions.Question {
	for _, section := range m.sections {
		if question := section.GetQuestion(fieldID); question != nil {
			return question
		}
	}
	return nil
}

// GetQuestionBySlug finds a top level question by slug in any section.
func (m *Manifest) GetQuestionBySlug(slug string) *questions.Question {
	for _, section := range m.sections {
		if question := section.GetQuestionBySlug(slug); question != nil {
			return question
		}
	}
	return nil
}

// GetAllData parses form data against every section.
func (m *Manifest) GetAllData(form formdata.Values) (questions.Data, error) {
	data := questions.Data{}
	for _, section := range m.sections {
		sectionData, err := section.GetData(form)
		if err != nil {
			return nil, err
		}
		for key, value := range sectionData {
			data[key] = value
		}
	}
	return data, nil
}

// GetNextSectionID returns the section after id, or the first section when
// id is empty. It returns "" after the last section.
func (m *Manifest) GetNextSectionID(id string) string {
	return m.nextSectionID(id, func(*Section) bool { return true })
}

// GetNextEditableSectionID is GetNextSectionID limited to editable sections.
func (m *Manifest) GetNextEditableSectionID(id string) string {
	return m.nextSectionID(id, func(s *Section) bool { return s.Editable })
}

// GetNextEditQuestionsSectionID is GetNextSectionID limited to sections whose
// questions are edited one at a time.
func (m *Manifest) GetNextEditQuestionsSectionID(id string) string {
	return m.nextSectionID(id, func(s *Section) bool { return s.EditQuestions })
}

func (m *Manifest) nextSectionID(id string, eligible func(*Section) bool) string {
	active := id == ""
	for _, section := range m.sections {
		if active && eligible(section) {
			return section.ID()
		}
		if section.ID() == id {
			active = true
		}
	}
	return ""
}

// Filter returns a manifest holding the sections and questions shown for
// ctx. Sections left without questions are dropped and the remaining
// questions renumbered.
func (m *Manifest) Filter(ctx questions.Context, options ...questions.FilterOption) (*Manifest, error) {
	return m.Copy().FilterInPlace(ctx, options...)
}

// FilterInPlace is Filter applied to m itself. Sections and questions held by
// callers go stale.
func (m *Manifest) FilterInPlace(ctx questions.Context, options ...questions.FilterOption) (*Manifest, error) {
	kept := make([]*Section, 0, len(m.sections))
	for _, section := range m.sections {
		filtered, err := section.FilterInPlace(ctx, options...)
		if err != nil {
			return nil, err
		}
		if filtered != nil {
			kept = append(kept, filtered)
		}
	}
	m.sections = kept
	m.assignQuestionNumbers()
	return m, nil
}

// Summary returns a manifest whose questions read service data.
func (m *Manifest) Summary(service questions.Data) *Manifest {
	return m.Copy().SummaryInPlace(service)
}

// SummaryInPlace is Summary applied to m itself.
func (m *Manifest) SummaryInPlace(service questions.Data) *Manifest {
	for _, section := range m.sections {
		section.SummaryInPlace(service)
	}
	m.assignQuestionNumbers()
	return m
}

// CountUnansweredQuestions counts required questions without an answer and
// optional questions left empty across a summarised manifest.
func CountUnansweredQuestions(m *Manifest) (required, optional int) {
	for _, section := range m.sections {
		for _, summary := range section.summaryViews() {
			switch {
			case summary.AnswerRequired():
				required++
			case summary.IsEmpty():
				optional++
			}
		}
	}
	return required, optional
}
