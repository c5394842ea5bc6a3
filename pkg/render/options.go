package render

import "github.com/goliatone/go-formcontent/pkg/questions"

// Option configures FromQuestion and FromSection.
type Option func(*config)

type config struct {
	values   questions.Data
	errors   *questions.ErrorMessages
	legacy   bool
	registry *Registry
	hidden   []HiddenField
}

func newConfig(options []Option) *config {
	cfg := &config{registry: defaultRegistry}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithValues pre-populates the views with values keyed by input name.
func WithValues(values questions.Data) Option {
	return func(cfg *config) {
		cfg.values = values
	}
}

// WithErrors attaches question scoped error messages, as returned by
// Section.GetErrorMessages.
func WithErrors(errs *questions.ErrorMessages) Option {
	return func(cfg *config) {
		cfg.errors = errs
	}
}

// WithLegacyHrefs suffixes the hrefs of radios, checkboxes, lists and
// booleans with the first choice, for templates that id choices from 1.
func WithLegacyHrefs() Option {
	return func(cfg *config) {
		cfg.legacy = true
	}
}

// WithRegistry overrides the question type to widget kind mapping.
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithHiddenFields adds hidden inputs to section views.
func WithHiddenFields(fields ...HiddenField) Option {
	return func(cfg *config) {
		cfg.hidden = append(cfg.hidden, fields...)
	}
}
