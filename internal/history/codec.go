package history

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireItem is the JSON shape shared by both variants. Field names match
// the storage format used since the first release.
type wireItem struct {
	ID        string `json:"id"`
	Type      Kind   `json:"type"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"`

	// Solution fields. Steps is always written for solutions, even
	// when empty.
	Question string    `json:"question,omitempty"`
	Answer   string    `json:"answer,omitempty"`
	Steps    *[]string `json:"steps,omitempty"`

	// Quiz fields. Questions is always written for quizzes.
	Questions *[]Question `json:"questions,omitempty"`
	Score     *int        `json:"score,omitempty"`
	Completed *bool       `json:"completed,omitempty"`
}

// MarshalItem encodes a single item with its type discriminator.
func MarshalItem(it Item) ([]byte, error) {
	w, err := toWire(it)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// unmarshalItem decodes a single item, dispatching on the "type" field.
func unmarshalItem(data []byte) (Item, error) {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode history item: %w", err)
	}
	return fromWire(w)
}

// MarshalItems encodes an ordered collection.
func MarshalItems(items []Item) ([]byte, error) {
	ws := make([]wireItem, 0, len(items))
	for _, it := range items {
		w, err := toWire(it)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	return json.Marshal(ws)
}

// UnmarshalItems decodes an ordered collection, preserving order.
func UnmarshalItems(data []byte) ([]Item, error) {
	var ws []wireItem
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	items := make([]Item, 0, len(ws))
	for i, w := range ws {
		it, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func toWire(it Item) (wireItem, error) {
	switch v := it.(type) {
	case *Solution:
		steps := v.Steps
		if steps == nil {
			steps = []string{}
		}
		return wireItem{
			ID:        v.ID,
			Type:      KindSolution,
			Title:     v.Title,
			CreatedAt: v.CreatedAt.UnixMilli(),
			Question:  v.Question,
			Answer:    v.Answer,
			Steps:     &steps,
		}, nil
	case *Quiz:
		completed := v.Completed
		questions := v.Questions
		if questions == nil {
			questions = []Question{}
		}
		return wireItem{
			ID:        v.ID,
			Type:      KindQuiz,
			Title:     v.Title,
			CreatedAt: v.CreatedAt.UnixMilli(),
			Questions: &questions,
			Score:     v.Score,
			Completed: &completed,
		}, nil
	case nil:
		return wireItem{}, fmt.Errorf("nil history item")
	default:
		return wireItem{}, fmt.Errorf("unsupported history item %T", it)
	}
}

func fromWire(w wireItem) (Item, error) {
	created := time.UnixMilli(w.CreatedAt)
	switch w.Type {
	case KindSolution:
		steps := []string{}
		if w.Steps != nil && *w.Steps != nil {
			steps = *w.Steps
		}
		return &Solution{
			ID:        w.ID,
			Title:     w.Title,
			CreatedAt: created,
			Question:  w.Question,
			Answer:    w.Answer,
			Steps:     steps,
		}, nil
	case KindQuiz:
		questions := []Question{}
		if w.Questions != nil && *w.Questions != nil {
			questions = *w.Questions
		}
		q := &Quiz{
			ID:        w.ID,
			Title:     w.Title,
			CreatedAt: created,
			Questions: questions,
			Score:     w.Score,
		}
		if w.Completed != nil {
			q.Completed = *w.Completed
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unknown history item type %q", w.Type)
	}
}
