package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/smartstudy/internal/history"
)

// historyVersion is the envelope version written by this release.
// Version 0 is the legacy bare JSON array.
const historyVersion = 1

var (
	// ErrCorruptHistory is returned when the stored history cannot be
	// decoded.
	ErrCorruptHistory = errors.New("corrupt history")

	// ErrDuplicateID is returned when saving an item whose id is
	// already stored.
	ErrDuplicateID = errors.New("duplicate history id")

	// ErrNotFound is returned by lookups that require the item to exist.
	ErrNotFound = errors.New("not found")
)

type historyEnvelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

// GetHistory returns all stored items, most recent first.
func (s *Store) GetHistory(ctx context.Context) ([]history.Item, error) {
	raw, err := s.Get(ctx, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return decodeHistory(raw)
}

// SaveToHistory prepends item to the stored collection.
func (s *Store) SaveToHistory(ctx context.Context, item history.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.GetHistory(ctx)
	if err != nil {
		return err
	}
	if _, exists := history.FindByID(items, item.ItemID()); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.ItemID())
	}
	items = append([]history.Item{item}, items...)
	return s.writeHistory(ctx, items)
}

// UpdateItemInHistory replaces the stored item with the same id. It is
// a no-op when no such item exists.
func (s *Store) UpdateItemInHistory(ctx context.Context, item history.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.GetHistory(ctx)
	if err != nil {
		return err
	}
	for i, it := range items {
		if it.ItemID() == item.ItemID() {
			items[i] = item
			return s.writeHistory(ctx, items)
		}
	}
	return nil
}

// FindItem returns the stored item with the given id, or ErrNotFound.
func (s *Store) FindItem(ctx context.Context, id string) (history.Item, error) {
	items, err := s.GetHistory(ctx)
	if err != nil {
		return nil, err
	}
	it, ok := history.FindByID(items, id)
	if !ok {
		return nil, fmt.Errorf("history item %s: %w", id, ErrNotFound)
	}
	return it, nil
}

// ClearHistory removes every stored item.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeHistory(ctx, nil)
}

func (s *Store) writeHistory(ctx context.Context, items []history.Item) error {
	raw, err := encodeHistory(items)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, KeyHistory, raw); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func encodeHistory(items []history.Item) (string, error) {
	data, err := history.MarshalItems(items)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	env, err := json.Marshal(historyEnvelope{Version: historyVersion, Items: data})
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(env), nil
}

func decodeHistory(raw string) ([]history.Item, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return []history.Item{}, nil
	}

	if data[0] == '[' {
		items, err := history.UnmarshalItems(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
		}
		return items, nil
	}

	var env historyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	if env.Version > historyVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptHistory, env.Version)
	}
	if len(env.Items) == 0 || string(env.Items) == "null" {
		return []history.Item{}, nil
	}
	items, err := history.UnmarshalItems(env.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	return items, nil
}
