package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartstudy/internal/history"
)

func testSolution(id string) *history.Solution {
	return history.NewSolution(id, time.UnixMilli(1700000000000), "What is 2+2?", "4", []string{"add"})
}

func testQuiz(id string) *history.Quiz {
	return history.NewQuiz(id, time.UnixMilli(1700000001000), "Arithmetic", []history.Question{
		{Type: history.TypeShortAnswer, Text: "2+2?", CorrectAnswer: "4"},
		{Type: history.TypeTrueFalse, Text: "1 is prime", CorrectAnswer: "False"},
	})
}

func TestGetHistory_Empty(t *testing.T) {
	s := openTestStore(t)
	items, err := s.GetHistory(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSaveToHistory_PrependsMostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveToHistory(ctx, testSolution("a")))
	require.NoError(t, s.SaveToHistory(ctx, testQuiz("b")))
	require.NoError(t, s.SaveToHistory(ctx, testSolution("c")))

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].ItemID())
	assert.Equal(t, "b", items[1].ItemID())
	assert.Equal(t, "a", items[2].ItemID())
	assert.IsType(t, &history.Quiz{}, items[1])
}

func TestSaveToHistory_RejectsDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveToHistory(ctx, testSolution("a")))
	err := s.SaveToHistory(ctx, testQuiz("a"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUpdateItemInHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveToHistory(ctx, testQuiz("q")))
	require.NoError(t, s.SaveToHistory(ctx, testSolution("s")))

	quiz := testQuiz("q")
	quiz, err := history.RecordAnswer(quiz, 0, "4")
	require.NoError(t, err)
	require.NoError(t, s.UpdateItemInHistory(ctx, quiz))

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "s", items[0].ItemID(), "update keeps position")

	got, ok := items[1].(*history.Quiz)
	require.True(t, ok)
	assert.True(t, got.Questions[0].Correct())
	require.NotNil(t, got.Score)
	assert.Equal(t, 1, *got.Score)
}

func TestUpdateItemInHistory_MissingIsNoop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveToHistory(ctx, testSolution("a")))
	require.NoError(t, s.UpdateItemInHistory(ctx, testSolution("ghost")))

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ItemID())
}

func TestFindItem(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveToHistory(ctx, testSolution("a")))

	it, err := s.FindItem(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", it.ItemID())

	_, err = s.FindItem(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetHistory_CorruptFailsLoudly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, raw := range []string{
		`{not json`,
		`[{"id":"x","type":"flashcard"}]`,
		`{"version":99,"items":[]}`,
	} {
		require.NoError(t, s.Set(ctx, KeyHistory, raw))
		_, err := s.GetHistory(ctx)
		assert.ErrorIs(t, err, ErrCorruptHistory, "raw=%s", raw)
	}

	err := s.SaveToHistory(ctx, testSolution("a"))
	assert.ErrorIs(t, err, ErrCorruptHistory, "writes must not clobber unreadable history")
}

func TestGetHistory_LegacyArrayMigratesOnWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	legacy := `[{"id":"old","type":"solution","title":"Old...","createdAt":1600000000000,
		"question":"Old","answer":"yes","steps":[]}]`
	require.NoError(t, s.Set(ctx, KeyHistory, legacy))

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "old", items[0].ItemID())

	require.NoError(t, s.SaveToHistory(ctx, testSolution("new")))

	raw, err := s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, `{"version":1,`), "raw=%s", raw)

	items, err = s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ItemID())
	assert.Equal(t, "old", items[1].ItemID())
}

func TestGetHistory_NullItems(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyHistory, `{"version":1,"items":null}`))

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClearHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveToHistory(ctx, testSolution("a")))
	require.NoError(t, s.SaveToHistory(ctx, testQuiz("b")))
	require.NoError(t, s.ClearHistory(ctx))

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// The id is free again.
	require.NoError(t, s.SaveToHistory(ctx, testSolution("a")))
}

func TestGetHistory_RoundTripsWholeItems(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created := time.UnixMilli(1700000000000)

	answered, err := history.RecordAnswer(testQuiz("answered"), 0, "4")
	require.NoError(t, err)

	saved := []history.Item{
		history.NewSolution("no-steps", created, "What is 2+2?", "4", nil),
		history.NewQuiz("empty-quiz", created, "", nil),
		testSolution("with-steps"),
		history.FinishQuiz(answered),
	}
	for _, it := range saved {
		require.NoError(t, s.SaveToHistory(ctx, it))
	}

	items, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(saved))
	for i, it := range saved {
		assert.Equal(t, it, items[len(saved)-1-i], "item %s", it.ItemID())
	}

	raw, err := s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.Contains(t, raw, `"steps":[]`)
	assert.Contains(t, raw, `"questions":[]`)
}
