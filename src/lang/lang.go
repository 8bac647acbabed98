// Package lang holds the fixed registry of languages the advisor can answer in.
package lang

import (
	"fmt"
	"strings"
)

// Language pairs a display name with the code the translation provider expects.
type Language struct {
	Name string
	Code string
}

func (l Language) Title() string       { return l.Name }
func (l Language) Description() string { return l.Code }
func (l Language) FilterValue() string { return l.Name }

var registry = []Language{
	{"English", "en"},
	{"Hindi", "hi"},
	{"Marathi", "mr"},
	{"Tamil", "ta"},
	{"Bengali", "bn"},
	{"Gujarati", "gu"},
	{"Telugu", "te"},
	{"Kannada", "kn"},
	{"Malayalam", "ml"},
	{"Punjabi", "pa"},
}

// All returns the registry in display order. The slice is a copy.
func All() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}

// Default is the first registry entry.
func Default() Language { return registry[0] }

// ByName finds a language by display name, ignoring case.
func ByName(name string) (Language, bool) {
	name = strings.TrimSpace(name)
	for _, l := range registry {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Language{}, false
}

// ByCode finds a language by provider code.
func ByCode(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range registry {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve accepts either a display name or a code.
func Resolve(s string) (Language, error) {
	if l, ok := ByName(s); ok {
		return l, nil
	}
	if l, ok := ByCode(s); ok {
		return l, nil
	}
	return Language{}, fmt.Errorf("unknown language %q", s)
}

// Names lists the display names in registry order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, l := range registry {
		names = append(names, l.Name)
	}
	return names
}
