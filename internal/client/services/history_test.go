package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyRecords() []models.MealRecord {
	return []models.MealRecord{
		{ID: "a", DisplayName: "Breakfast", Date: "2025-03-10", TotalCalories: 500},
		{ID: "b", DisplayName: "Lunch", Date: "2025-03-10", TotalCalories: 300},
		{ID: "c", DisplayName: "Dinner", Date: "2025-03-09", TotalCalories: 400},
	}
}

func newHistory(fc *fakeClient) *HistoryService {
	h := NewHistoryService(NewMealService(fc, logging.Discard()), logging.Discard())
	h.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local) }
	return h
}

func TestHistory_Load(t *testing.T) {
	fc := &fakeClient{ListRet: historyRecords()}
	h := newHistory(fc)

	buckets, err := h.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, 800.0, buckets[0].TotalCalories)
	assert.True(t, buckets[0].IsToday)
	assert.Equal(t, 400.0, buckets[1].TotalCalories)
	assert.Equal(t, "", fc.LastDate, "all meals are fetched")

	assert.True(t, h.IsExpanded(0))
	assert.True(t, h.Toggle(1))
	assert.False(t, h.IsExpanded(0))
	assert.True(t, h.IsExpanded(1))
	assert.False(t, h.Toggle(7))
}

func TestHistory_RenamePatchesLocally(t *testing.T) {
	fc := &fakeClient{ListRet: historyRecords(), RenameRet: &models.MealResult{Success: true}}
	h := newHistory(fc)
	ctx := context.Background()
	_, err := h.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, h.Rename(ctx, "a", "  Breakfast v2 "))

	assert.Equal(t, "a", fc.LastMealID)
	assert.Equal(t, "Breakfast v2", fc.LastName)
	assert.Equal(t, 1, fc.called("list"), "no re-fetch after rename")

	b := h.Buckets()
	assert.Equal(t, "Breakfast v2", b[0].Meals[0].Name)
	assert.Equal(t, 500.0, b[0].Meals[0].TotalCalories)
	assert.Equal(t, 800.0, b[0].TotalCalories)
}

func TestHistory_RenameFailureLeavesView(t *testing.T) {
	fc := &fakeClient{ListRet: historyRecords(), RenameErr: errors.New("boom")}
	h := newHistory(fc)
	ctx := context.Background()
	_, _ = h.Load(ctx)

	require.Error(t, h.Rename(ctx, "a", "X"))
	assert.Equal(t, "Breakfast", h.Buckets()[0].Meals[0].Name)

	require.ErrorIs(t, h.Rename(ctx, "a", "  "), ErrEmptyText)
}

func TestHistory_DeleteReloads(t *testing.T) {
	fc := &fakeClient{ListRet: historyRecords()}
	h := newHistory(fc)
	ctx := context.Background()
	_, _ = h.Load(ctx)
	h.Toggle(1)

	fc.ListRet = historyRecords()[2:]
	buckets, err := h.Delete(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, "a", fc.LastMealID)
	assert.Equal(t, 2, fc.called("list"))
	require.Len(t, buckets, 1)
	assert.True(t, h.IsExpanded(0), "reload resets the expanded day")

	fc.DeleteErr = errors.New("boom")
	_, err = h.Delete(ctx, "c")
	require.Error(t, err)
}
