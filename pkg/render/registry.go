package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formcontent/pkg/questions"
)

// Kind names the widget a renderer draws for a question.
type Kind string

const (
	KindText          Kind = "text"
	KindTextarea      Kind = "textarea"
	KindNumber        Kind = "number"
	KindRadios        Kind = "radios"
	KindBoolean       Kind = "boolean"
	KindBooleanList   Kind = "boolean-list"
	KindDate          Kind = "date"
	KindList          Kind = "list"
	KindCheckboxes    Kind = "checkboxes"
	KindCheckboxTree  Kind = "checkbox-tree"
	KindPricing       Kind = "pricing"
	KindMultiquestion Kind = "multiquestion"
	KindUpload        Kind = "upload"
	KindHidden        Kind = "hidden"
)

// Registry maps question types to widget kinds. Types without an entry
// render as KindText.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry returns a registry holding the kinds of the built in question
// types. Dynamic lists render like multiquestions.
func NewRegistry() *Registry {
	return &Registry{
		kinds: map[string]Kind{
			questions.TypeText:          KindText,
			questions.TypeTextboxLarge:  KindTextarea,
			questions.TypeNumber:        KindNumber,
			questions.TypeRadios:        KindRadios,
			questions.TypeBoolean:       KindBoolean,
			questions.TypeBooleanList:   KindBooleanList,
			questions.TypeDate:          KindDate,
			questions.TypeList:          KindList,
			questions.TypeCheckboxes:    KindCheckboxes,
			questions.TypeCheckboxTree:  KindCheckboxTree,
			questions.TypePricing:       KindPricing,
			questions.TypeMultiquestion: KindMultiquestion,
			questions.TypeDynamicList:   KindMultiquestion,
			questions.TypeUpload:        KindUpload,
			questions.TypeServiceID:     KindHidden,
		},
	}
}

var defaultRegistry = NewRegistry()

// Register sets the kind for a question type. Replacing a built in type is
// allowed; an empty type or kind is an error.
func (r *Registry) Register(typ string, kind Kind) error {
	if typ == "" {
		return fmt.Errorf("render: question type is required")
	}
	if kind == "" {
		return fmt.Errorf("render: kind for %q is required", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[typ] = kind
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(typ string, kind Kind) {
	if err := r.Register(typ, kind); err != nil {
		panic(err)
	}
}

// Kind returns the widget kind for typ.
func (r *Registry) Kind(typ string) Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if kind, ok := r.kinds[typ]; ok {
		return kind
	}
	return KindText
}

// Has reports whether typ has a registered kind.
func (r *Registry) Has(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.kinds[typ]
	return ok
}

// List returns the registered question types, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.kinds))
	for typ := range r.kinds {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
