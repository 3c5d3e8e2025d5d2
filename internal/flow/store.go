// Package flow implements the client-side half of the onboarding pipeline:
// the identity store, the one-shot authorization-code binder, consent
// capture, and the checkout initiator. It talks to the backend endpoints and
// hands the browser over to the external collaborators via a Navigator.
package flow

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"membership-backend-go/internal/models"
)

// identityFileName is the fixed key under which the bound identity is kept
// in client-local storage.
const identityFileName = "discord_user.json"

// IdentityStore persists the bound Identity in client-local storage. It has
// exactly three operations (load, save, clear) and one fallback rule: absent
// or malformed data reads as "no identity", never as an error.
type IdentityStore struct {
	mu   sync.Mutex
	path string
}

// NewIdentityStore creates a store rooted at the given directory.
func NewIdentityStore(dir string) *IdentityStore {
	return &IdentityStore{path: filepath.Join(dir, identityFileName)}
}

// Load returns the stored identity, or nil when nothing usable is stored.
// It fails open to the unauthenticated state by design of the contract:
// a corrupt record must log the user out, not crash the pipeline.
func (s *IdentityStore) Load() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil
	}
	if identity.ID == "" {
		return nil
	}
	return &identity
}

// Save writes the identity under the fixed key, replacing any previous one.
func (s *IdentityStore) Save(identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the stored identity. Clearing an empty store is a no-op.
func (s *IdentityStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path)
}
