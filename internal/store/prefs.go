package store

import (
	"context"
	"errors"
	"fmt"
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned by SetTheme for values other than light
// and dark.
var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// GetTheme returns the stored theme, or light if none is set or the
// stored value is unrecognised.
func (s *Store) GetTheme(ctx context.Context) (Theme, error) {
	v, err := s.Get(ctx, KeyTheme)
	if err != nil {
		return ThemeLight, fmt.Errorf("read theme: %w", err)
	}
	if t, err := ParseTheme(v); err == nil {
		return t, nil
	}
	return ThemeLight, nil
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.Set(ctx, KeyTheme, string(t)); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

// GetProStatus reports whether the mock subscription is active.
func (s *Store) GetProStatus(ctx context.Context) (bool, error) {
	v, err := s.Get(ctx, KeyIsPro)
	if err != nil {
		return false, fmt.Errorf("read pro status: %w", err)
	}
	return v == "true", nil
}

// SetProStatus persists the mock subscription flag.
func (s *Store) SetProStatus(ctx context.Context, pro bool) error {
	v := "false"
	if pro {
		v = "true"
	}
	if err := s.Set(ctx, KeyIsPro, v); err != nil {
		return fmt.Errorf("write pro status: %w", err)
	}
	return nil
}
