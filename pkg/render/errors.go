package render

import (
	"strings"

	"github.com/goliatone/go-formcontent/pkg/questions"
)

// ErrorLink is one entry of an error summary: the message and the fragment
// of the input it refers to.
type ErrorLink struct {
	Text string `json:"text,omitempty"`
	Href string `json:"href,omitempty"`
}

// ErrorSummary lists errs in order as links. Messages are trimmed, blank
// ones dropped and repeated text and href pairs collapsed, so the items of
// an expanded boolean list sharing one message appear once.
func ErrorSummary(errs *questions.ErrorMessages) []ErrorLink {
	if errs.Len() == 0 {
		return nil
	}

	out := make([]ErrorLink, 0, errs.Len())
	seen := make(map[ErrorLink]struct{}, errs.Len())
	for _, message := range errs.Messages() {
		link := ErrorLink{
			Text: strings.TrimSpace(message.Message),
			Href: message.Href,
		}
		if link.Text == "" {
			continue
		}
		if _, exists := seen[link]; exists {
			continue
		}
		seen[link] = struct{}{}
		out = append(out, link)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
