// Package prefs persists small user preferences: the colour theme and the
// recent exercise searches.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zenloop/zenloop/internal/client/storage"
)

// Storage keys.
const (
	ThemeKey          = "theme"
	RecentSearchesKey = "recent_searches"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// MaxRecentSearches caps the recent-search history.
const MaxRecentSearches = 5

// Prefs reads and writes user preferences.
type Prefs struct {
	store storage.Store
}

// New creates a preferences accessor over the given store.
func New(store storage.Store) *Prefs {
	return &Prefs{store: store}
}

// Theme returns the stored theme. Anything other than "dark" (including a
// missing or unreadable value) reads as light.
func (p *Prefs) Theme(ctx context.Context) string {
	data, err := p.store.Get(ctx, ThemeKey)
	if err == nil && string(data) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// SetTheme stores the theme.
func (p *Prefs) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("invalid theme %q, must be %q or %q", theme, ThemeDark, ThemeLight)
	}

	if err := p.store.Set(ctx, ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}

	return nil
}

// ToggleTheme flips between dark and light and returns the new value.
func (p *Prefs) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if p.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}

	if err := p.SetTheme(ctx, next); err != nil {
		return "", err
	}

	return next, nil
}

// RecentSearches returns the stored search history, most recent first. A
// missing or unreadable value reads as empty.
func (p *Prefs) RecentSearches(ctx context.Context) []string {
	data, err := p.store.Get(ctx, RecentSearchesKey)
	if err != nil {
		return nil
	}

	var searches []string
	if err := json.Unmarshal(data, &searches); err != nil {
		return nil
	}

	return searches
}

// RecordSearch pushes query to the front of the history, dropping any
// earlier occurrence and trimming to MaxRecentSearches. Empty queries are
// ignored.
func (p *Prefs) RecordSearch(ctx context.Context, query string) error {
	if query == "" {
		return nil
	}

	searches := []string{query}
	for _, s := range p.RecentSearches(ctx) {
		if s != query {
			searches = append(searches, s)
		}
	}
	if len(searches) > MaxRecentSearches {
		searches = searches[:MaxRecentSearches]
	}

	data, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("failed to marshal recent searches: %w", err)
	}

	if err := p.store.Set(ctx, RecentSearchesKey, data); err != nil {
		return fmt.Errorf("failed to persist recent searches: %w", err)
	}

	return nil
}
