package template

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Tags that would let a content string pull in other files.
var bannedTags = []string{"include", "extends", "import", "ssi"}

var (
	sandboxOnce sync.Once
	sandbox     *pongo2.TemplateSet
	sandboxErr  error
)

// sandboxSet returns the shared template set. The set is only read after
// construction so it can be used from concurrent requests.
func sandboxSet() (*pongo2.TemplateSet, error) {
	sandboxOnce.Do(func() {
		set := pongo2.NewSet("formcontent", nullLoader{})
		for _, tag := range bannedTags {
			if err := set.BanTag(tag); err != nil {
				sandboxErr = fmt.Errorf("template: ban tag %q: %w", tag, err)
				return
			}
		}
		sandbox = set
	})
	return sandbox, sandboxErr
}

// nullLoader refuses every lookup so templates cannot read from disk.
type nullLoader struct{}

func (nullLoader) Abs(_, name string) string {
	return name
}

func (nullLoader) Get(path string) (io.Reader, error) {
	return nil, errors.New("template: loading " + path + " is not allowed")
}
