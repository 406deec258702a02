package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealService_ArgumentChecks(t *testing.T) {
	fc := &fakeClient{}
	m := NewMealService(fc, logging.Discard())
	ctx := context.Background()

	_, err := m.Create(ctx, "  ", "x")
	assert.ErrorIs(t, err, ErrEmptyText)
	_, err = m.Rename(ctx, "", "x")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = m.Rename(ctx, "m1", " ")
	assert.ErrorIs(t, err, ErrEmptyText)
	_, err = m.Update(ctx, "m1", "", "")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.ErrorIs(t, m.Delete(ctx, ""), ErrEmptyID)
	_, err = m.List(ctx, "10/03/2025")
	assert.ErrorContains(t, err, "invalid date")

	assert.Empty(t, fc.Calls)
}

func TestMealService_Passthrough(t *testing.T) {
	fc := &fakeClient{
		CreateRet: &models.MealResult{Success: true},
		TodayRet:  &models.TodaySummary{Totals: models.Totals{Calories: 900}},
		ListRet:   []models.MealRecord{{ID: "a"}},
	}
	m := NewMealService(fc, logging.Discard())
	ctx := context.Background()

	_, err := m.Create(ctx, " 2 eggs ", " Breakfast ")
	require.NoError(t, err)
	assert.Equal(t, "2 eggs", fc.LastText)
	assert.Equal(t, "Breakfast", fc.LastName)

	s, err := m.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 900.0, s.Totals.Calories)

	list, err := m.List(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "2025-03-10", fc.LastDate)
}

func TestMealService_WrapsKeepSentinels(t *testing.T) {
	fc := &fakeClient{DeleteErr: &client.APIError{Status: 503}}
	m := NewMealService(fc, logging.Discard())

	err := m.Delete(context.Background(), "m1")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.ErrorContains(t, err, "delete meal error")
}

func TestTokenStore(t *testing.T) {
	ts := NewTokenStore(setupDB(t))
	ctx := context.Background()

	tok, err := ts.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, ts.SetToken(ctx, "abc"))
	tok, _ = ts.Token(ctx)
	assert.Equal(t, "abc", tok)

	require.NoError(t, ts.Clear(ctx))
	tok, _ = ts.Token(ctx)
	assert.Empty(t, tok)
}
