// Package settings holds the global, install-wide preferences.
package settings

import (
	"encoding/json"
	"fmt"
)

// Known keys of the settings file.
const (
	KeyDarkMode         = "dark_mode"
	KeySidebarCollapsed = "sidebar_collapsed"
)

// Theme names the palette a front end should use.
type Theme string

const (
	// ThemeDark is used when dark mode is on.
	ThemeDark Theme = "dark"
	// ThemeLight is used when dark mode is off.
	ThemeLight Theme = "light"
)

// ThemeFor maps the dark-mode flag to a palette name.
func ThemeFor(darkMode bool) Theme {
	if darkMode {
		return ThemeDark
	}
	return ThemeLight
}

// Settings is an immutable value; the With* methods return modified copies.
// Keys this version does not know are carried along so they survive a rewrite.
type Settings struct {
	darkMode         bool
	sidebarCollapsed bool
	extra            map[string]json.RawMessage
}

// Defaults returns the documented default values.
func Defaults() Settings {
	return Settings{darkMode: true, sidebarCollapsed: false}
}

// DarkMode reports whether the dark palette is selected.
func (s Settings) DarkMode() bool { return s.darkMode }

// SidebarCollapsed reports whether the sidebar starts collapsed.
func (s Settings) SidebarCollapsed() bool { return s.sidebarCollapsed }

// Theme is the palette derived from DarkMode.
func (s Settings) Theme() Theme { return ThemeFor(s.darkMode) }

// WithDarkMode returns a copy with dark mode set to v.
func (s Settings) WithDarkMode(v bool) Settings {
	s.darkMode = v
	return s
}

// WithSidebarCollapsed returns a copy with the sidebar flag set to v.
func (s Settings) WithSidebarCollapsed(v bool) Settings {
	s.sidebarCollapsed = v
	return s
}

// Extra returns a copy of the raw value stored under an unknown key.
func (s Settings) Extra(key string) (json.RawMessage, bool) {
	v, ok := s.extra[key]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), v...), true
}

// ExtraKeys lists the preserved unknown keys.
func (s Settings) ExtraKeys() []string {
	keys := make([]string, 0, len(s.extra))
	for k := range s.extra {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON writes the known keys together with every preserved extra key.
func (s Settings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.extra)+2)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc[KeyDarkMode] = s.darkMode
	doc[KeySidebarCollapsed] = s.sidebarCollapsed
	return json.Marshal(doc)
}

// UnmarshalJSON starts from Defaults and overlays whatever the document holds.
// A known key holding the wrong type fails the whole document.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Defaults()
	for k, v := range raw {
		switch k {
		case KeyDarkMode:
			if err := json.Unmarshal(v, &out.darkMode); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		case KeySidebarCollapsed:
			if err := json.Unmarshal(v, &out.sidebarCollapsed); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		default:
			if out.extra == nil {
				out.extra = make(map[string]json.RawMessage)
			}
			out.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	*s = out
	return nil
}
