package projects

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// OfflineStore keeps a serialized list of projects in a single local JSON
// file. It backs the degraded save path when the hosted store is
// unreachable; absent or malformed files read as an empty list.
type OfflineStore struct {
	path string
	mu   sync.Mutex
}

func NewOfflineStore(path string) *OfflineStore {
	return &OfflineStore{path: path}
}

// load must be called with o.mu held.
func (o *OfflineStore) load() []Project {
	data, err := os.ReadFile(o.path)
	if err != nil {
		return []Project{}
	}
	var list []Project
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("WARN: offline store at %s is malformed, treating as empty: %v", o.path, err)
		return []Project{}
	}
	return list
}

// Append adds a project to the local list.
func (o *OfflineStore) Append(p Project) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	list := append(o.load(), p)
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(o.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(o.path, data, 0644)
}

// ListByUser filters the local list by owner. Best effort, unordered.
func (o *OfflineStore) ListByUser(userID string) []Project {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Project, 0)
	for _, p := range o.load() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// Get resolves a project from the local list.
func (o *OfflineStore) Get(id string) (*Project, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, p := range o.load() {
		if p.ID == id {
			proj := p
			return &proj, nil
		}
	}
	return nil, ErrNotFound
}
