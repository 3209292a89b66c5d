// Package templates holds the fixed greeting templates used by rule mode.
package templates

import "strings"

// DefaultImage is the asset returned when no template matches a prompt.
const DefaultImage = "default.jpg"

// Template is a greeting message pattern keyed by a lowercase keyword.
type Template struct {
	Keyword   string
	Message   string // contains a {name} placeholder
	ImageFile string // optional
}

// Format substitutes the recipient name into the message.
func (t Template) Format(name string) string {
	return strings.ReplaceAll(t.Message, "{name}", name)
}

// Store is an ordered, read-only set of templates.
type Store struct {
	templates []Template
}

// New creates a store from the given templates. Lookup honours the slice order.
func New(templates ...Template) *Store {
	cp := make([]Template, len(templates))
	copy(cp, templates)
	for i := range cp {
		cp[i].Keyword = strings.ToLower(cp[i].Keyword)
	}
	return &Store{templates: cp}
}

// Default returns the built-in diwali, new year and birthday templates.
func Default() *Store {
	return New(
		Template{
			Keyword:   "diwali",
			Message:   "Hello {name}, Diwali greetings! We wish you a prosperous and joyful holiday season.",
			ImageFile: "diwali.jpg",
		},
		Template{
			Keyword:   "new year",
			Message:   "Dear {name}, Happy New Year! Wishing you success, health, and happiness in the year ahead.",
			ImageFile: "newyear.jpg",
		},
		Template{
			Keyword:   "birthday",
			Message:   "Dear {name}, wishing you a very Happy Birthday! May your day be filled with joy and celebration.",
			ImageFile: "birthday.jpg",
		},
	)
}

// Lookup returns the first template whose keyword occurs in the prompt,
// ignoring case.
func (s *Store) Lookup(prompt string) (Template, bool) {
	lower := strings.ToLower(prompt)
	for _, t := range s.templates {
		if strings.Contains(lower, t.Keyword) {
			return t, true
		}
	}
	return Template{}, false
}

// Keywords returns the keywords in declaration order.
func (s *Store) Keywords() []string {
	out := make([]string, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t.Keyword)
	}
	return out
}

// Images returns every image referenced by the store plus the default image.
func (s *Store) Images() []string {
	out := make([]string, 0, len(s.templates)+1)
	for _, t := range s.templates {
		if t.ImageFile != "" {
			out = append(out, t.ImageFile)
		}
	}
	return append(out, DefaultImage)
}

// Fallback is the generic message used when no template matches.
func Fallback(name, prompt string) string {
	return "Dear " + name + ", thank you for reaching out. " + prompt
}
