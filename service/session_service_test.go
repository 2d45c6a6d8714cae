package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex-catalog/models"
)

type catalogFunc func(ctx context.Context) ([]models.CatalogStub, error)

func (f catalogFunc) Stubs(ctx context.Context) ([]models.CatalogStub, error) { return f(ctx) }

type computeFunc func(ctx context.Context, stubs []models.CatalogStub, state models.ViewState) (models.Page, error)

func (f computeFunc) ComputePage(ctx context.Context, stubs []models.CatalogStub, state models.ViewState) (models.Page, error) {
	return f(ctx, stubs, state)
}

func staticCatalog(n int) catalogFunc {
	stubs := makeStubs("mon", n)
	return func(context.Context) ([]models.CatalogStub, error) { return stubs, nil }
}

func TestSessionCreate(t *testing.T) {
	svc := NewSessionService(staticCatalog(75), newTestViewService(echoResolver, staticIndex{}), 0, nil)

	snap, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, models.DefaultViewState(), snap.State)
	require.NotNil(t, snap.Page)
	assert.Len(t, snap.Page.Records, 50)
	assert.Equal(t, 2, snap.Page.TotalPages)

	got, err := svc.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
}

func TestSessionCreate_FailureDropsSession(t *testing.T) {
	failing := catalogFunc(func(context.Context) ([]models.CatalogStub, error) {
		return nil, &NetworkError{URL: "index", Err: errors.New("offline")}
	})
	svc := NewSessionService(failing, newTestViewService(echoResolver, staticIndex{}), 0, nil)

	_, err := svc.Create(context.Background())
	require.Error(t, err)
	assert.Empty(t, svc.sessions)
}

func TestSessionUpdate(t *testing.T) {
	svc := NewSessionService(staticCatalog(75), newTestViewService(echoResolver, staticIndex{}), 0, nil)
	snap, err := svc.Create(context.Background())
	require.NoError(t, err)

	state := models.ViewState{SortMode: "za", PageNumber: 2}
	page, err := svc.Update(context.Background(), snap.ID, state)
	require.NoError(t, err)
	assert.Len(t, page.Records, 25)

	got, err := svc.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SortAlphaDesc, got.State.SortMode, "stored state is normalized")
	assert.Equal(t, 2, got.Page.PageNumber)
}

func TestSessionUpdate_Errors(t *testing.T) {
	svc := NewSessionService(staticCatalog(3), newTestViewService(echoResolver, staticIndex{}), 0, nil)

	_, err := svc.Update(context.Background(), "nope", models.DefaultViewState())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	snap, err := svc.Create(context.Background())
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), snap.ID, models.ViewState{SortMode: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidViewState)

	_, err = svc.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// A slow computation for an older view state finishes after a newer one.
// Its page must be discarded even though it completed last.
func TestSessionUpdate_StaleResultNeverOverwritesNewer(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	views := computeFunc(func(_ context.Context, stubs []models.CatalogStub, state models.ViewState) (models.Page, error) {
		if state.SearchText == "slow" {
			close(started)
			<-release // ignores cancellation on purpose
		}
		return models.Page{PageNumber: state.PageNumber, MatchCount: len(state.SearchText)}, nil
	})
	svc := NewSessionService(staticCatalog(10), views, 0, nil)
	snap, err := svc.Create(context.Background())
	require.NoError(t, err)

	staleErr := make(chan error, 1)
	go func() {
		_, err := svc.Update(context.Background(), snap.ID, models.ViewState{SearchText: "slow", PageNumber: 1})
		staleErr <- err
	}()
	<-started

	page, err := svc.Update(context.Background(), snap.ID, models.ViewState{SearchText: "fast!", PageNumber: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, page.PageNumber)

	close(release)
	assert.ErrorIs(t, <-staleErr, ErrSuperseded)

	got, err := svc.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "fast!", got.State.SearchText)
	assert.Equal(t, 5, got.Page.MatchCount)
}

func TestSessionUpdate_NewerStateCancelsOlder(t *testing.T) {
	started := make(chan struct{})
	views := computeFunc(func(ctx context.Context, stubs []models.CatalogStub, state models.ViewState) (models.Page, error) {
		if state.SearchText == "slow" {
			close(started)
			<-ctx.Done()
			return models.Page{}, ctx.Err()
		}
		return models.Page{PageNumber: state.PageNumber}, nil
	})
	svc := NewSessionService(staticCatalog(10), views, 0, nil)
	snap, err := svc.Create(context.Background())
	require.NoError(t, err)

	staleErr := make(chan error, 1)
	go func() {
		_, err := svc.Update(context.Background(), snap.ID, models.ViewState{SearchText: "slow"})
		staleErr <- err
	}()
	<-started

	_, err = svc.Update(context.Background(), snap.ID, models.DefaultViewState())
	require.NoError(t, err)

	select {
	case err := <-staleErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("older computation was not cancelled")
	}
}

func TestSessionExpiry(t *testing.T) {
	svc := NewSessionService(staticCatalog(3), newTestViewService(echoResolver, staticIndex{}), time.Minute, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	old, err := svc.Create(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fresh, err := svc.Create(context.Background())
	require.NoError(t, err)

	_, err = svc.Get(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionUpdate_HugePageIsEmptyAndSessionStillExpires(t *testing.T) {
	svc := NewSessionService(staticCatalog(60), newTestViewService(echoResolver, staticIndex{}), time.Minute, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	snap, err := svc.Create(context.Background())
	require.NoError(t, err)

	state := models.DefaultViewState()
	state.PageNumber = 1<<58 + 1
	var page models.Page
	require.NotPanics(t, func() {
		page, err = svc.Update(context.Background(), snap.ID, state)
	})
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Equal(t, 2, page.TotalPages)

	now = now.Add(2 * time.Minute)
	_, err = svc.Create(context.Background())
	require.NoError(t, err)
	_, err = svc.Get(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
