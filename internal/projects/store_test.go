package projects

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote records calls so tests can assert which store served a request.
type fakeRemote struct {
	failing bool

	insertCalls int
	listCalls   int
	getCalls    int

	projects map[string]Project
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{projects: make(map[string]Project)}
}

var errRemoteDown = errors.New("connection refused")

func (f *fakeRemote) Insert(_ context.Context, userID, prompt, htmlContent, title string) (*Project, error) {
	f.insertCalls++
	if f.failing {
		return nil, errRemoteDown
	}
	p := Project{
		ID:          "11111111-2222-3333-4444-555555555555",
		UserID:      userID,
		Prompt:      prompt,
		HTMLContent: htmlContent,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}
	f.projects[p.ID] = p
	return &p, nil
}

func (f *fakeRemote) ListByUser(_ context.Context, userID string) ([]Project, error) {
	f.listCalls++
	if f.failing {
		return nil, errRemoteDown
	}
	out := make([]Project, 0)
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRemote) GetByID(_ context.Context, id string) (*Project, error) {
	f.getCalls++
	if f.failing {
		return nil, errRemoteDown
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func newTestStore(t *testing.T, remote Remote) *Store {
	t.Helper()
	offline := NewOfflineStore(filepath.Join(t.TempDir(), "projects.json"))
	return NewStore(remote, offline)
}

func TestSaveUsesRemoteWhenHealthy(t *testing.T) {
	remote := newFakeRemote()
	store := newTestStore(t, remote)

	id := store.Save(context.Background(), "user-a", "a blog", "<html></html>", "Blog")

	assert.Equal(t, 1, remote.insertCalls)
	assert.False(t, IsOfflineID(id))
}

func TestSaveDegradesToOfflineOnRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.failing = true
	store := newTestStore(t, remote)

	id := store.Save(context.Background(), "user-a", "a blog", "<html></html>", "Blog")

	require.True(t, IsOfflineID(id), "degraded save must return an offline-marked id, got %q", id)

	// The tuple is retrievable locally under the synthesized id.
	p, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "user-a", p.UserID)
	assert.Equal(t, "a blog", p.Prompt)
	assert.Equal(t, "<html></html>", p.HTMLContent)
	assert.Equal(t, "Blog", p.Title)
}

func TestSaveWithoutRemoteGoesOffline(t *testing.T) {
	store := newTestStore(t, nil)

	id := store.Save(context.Background(), "user-a", "a blog", "<html></html>", "Blog")
	assert.True(t, IsOfflineID(id))
}

func TestGetByIDRoutesOfflineIDsLocally(t *testing.T) {
	remote := newFakeRemote()
	store := newTestStore(t, remote)
	remote.failing = true
	id := store.Save(context.Background(), "user-a", "a blog", "<html></html>", "Blog")
	remote.failing = false
	getCallsBefore := remote.getCalls

	p, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, getCallsBefore, remote.getCalls, "offline ids must never be looked up remotely")
}

func TestGetByIDRoutesOtherIDsRemotelyOnly(t *testing.T) {
	remote := newFakeRemote()
	store := newTestStore(t, remote)

	// Seed the local store with a non-prefixed id. Routing must still go to
	// the remote exclusively and report absence, not find the local row.
	require.NoError(t, store.offline.Append(Project{ID: "not-prefixed", UserID: "user-a"}))

	_, err := store.GetByID(context.Background(), "not-prefixed")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, remote.getCalls)
}

func TestGetByIDWithoutRemote(t *testing.T) {
	store := newTestStore(t, nil)
	_, err := store.GetByID(context.Background(), "some-remote-id")
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestListByUserFallsBackWhenRemoteFails(t *testing.T) {
	remote := newFakeRemote()
	store := newTestStore(t, remote)

	remote.failing = true
	offlineID := store.Save(context.Background(), "user-a", "a blog", "<html></html>", "Blog")

	list, degraded := store.ListByUser(context.Background(), "user-a")
	assert.True(t, degraded)
	require.Len(t, list, 1)
	assert.Equal(t, offlineID, list[0].ID)
	assert.True(t, strings.HasPrefix(list[0].ID, OfflineIDPrefix))
}

func TestListByUserHealthyRemote(t *testing.T) {
	remote := newFakeRemote()
	store := newTestStore(t, remote)
	store.Save(context.Background(), "user-a", "a blog", "<html></html>", "Blog")

	list, degraded := store.ListByUser(context.Background(), "user-a")
	assert.False(t, degraded)
	assert.Len(t, list, 1)
}
