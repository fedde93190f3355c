package projects

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Remote is the hosted project store.
type Remote interface {
	Insert(ctx context.Context, userID, prompt, htmlContent, title string) (*Project, error)
	ListByUser(ctx context.Context, userID string) ([]Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
}

// Store routes between the hosted store and the local offline fallback.
type Store struct {
	remote  Remote // nil when no database is configured
	offline *OfflineStore
}

func NewStore(remote Remote, offline *OfflineStore) *Store {
	return &Store{remote: remote, offline: offline}
}

// Save persists a project. It is effectively non-failing: on any remote
// failure the tuple is written to the offline store under a synthesized
// offline-prefixed id, which is returned so the user's workflow continues.
func (s *Store) Save(ctx context.Context, userID, prompt, htmlContent, title string) string {
	if s.remote != nil {
		p, err := s.remote.Insert(ctx, userID, prompt, htmlContent, title)
		if err == nil {
			return p.ID
		}
		log.Printf("Error saving project remotely, degrading to offline store: %v", err)
	}

	id := OfflineIDPrefix + uuid.New().String()
	p := Project{
		ID:          id,
		UserID:      userID,
		Prompt:      prompt,
		HTMLContent: htmlContent,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.offline.Append(p); err != nil {
		log.Printf("Failed to save project offline: %v", err)
	}
	return id
}

// ListByUser returns the user's projects, newest first when served remotely.
// degraded is true when the remote store could not be reached and the list
// came from (or fell back to) local data.
func (s *Store) ListByUser(ctx context.Context, userID string) (list []Project, degraded bool) {
	if s.remote != nil {
		remote, err := s.remote.ListByUser(ctx, userID)
		if err == nil {
			return remote, false
		}
		log.Printf("Error listing projects remotely, falling back to offline store: %v", err)
	}
	return s.offline.ListByUser(userID), true
}

// GetByID resolves a project. The offline-marker prefix is checked first:
// offline ids are resolved exclusively from the local store, all other ids
// exclusively from the remote store.
func (s *Store) GetByID(ctx context.Context, id string) (*Project, error) {
	if IsOfflineID(id) {
		return s.offline.Get(id)
	}
	if s.remote == nil {
		return nil, ErrRemoteUnavailable
	}
	return s.remote.GetByID(ctx, id)
}
