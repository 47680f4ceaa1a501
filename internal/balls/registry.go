// Package balls keeps the user's custom ball images and resolves the active
// one to a decoded sprite. Decoding happens once, when a ball is activated;
// the frame loop only ever reads the cached sprite.
package balls

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/storage"
)

// Repository stores raw ball payloads. *storage.Store implements it.
type Repository interface {
	SaveBall(rec storage.BallRecord) error
	DeleteBall(id string) (bool, error)
	Ball(id string) (*storage.BallRecord, error)
	ListBalls() ([]storage.BallRecord, error)
}

// Entry describes a stored ball.
type Entry struct {
	ID     string
	Name   string
	Active bool
}

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	repo     Repository
	logger   *log.Logger
	activeID string
	active   *core.Sprite
}

// New creates a registry over repo with no active ball.
func New(repo Repository, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{repo: repo, logger: logger}
}

// Add stores a new ball and returns its id. payload is an encoded image
// (PNG, JPEG, GIF, BMP, WebP) or a data URL wrapping one.
func (r *Registry) Add(name string, payload []byte) (string, error) {
	if _, err := Probe(payload); err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Custom Ball"
	}

	id := uuid.NewString()
	if err := r.repo.SaveBall(storage.BallRecord{ID: id, Name: name, Payload: payload}); err != nil {
		return "", fmt.Errorf("balls: cannot add %q: %w", name, err)
	}

	r.logger.Debug("Custom ball added", "id", id, "name", name, "bytes", len(payload))
	return id, nil
}

// AddFile adds the image at path, named after the file.
func (r *Registry) AddFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("balls: cannot read %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return r.Add(name, data)
}

// Remove deletes a ball. Removing the active ball clears the selection.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.repo.DeleteBall(id); err != nil {
		return fmt.Errorf("balls: cannot remove %s: %w", id, err)
	}
	if r.activeID == id {
		r.activeID = ""
		r.active = nil
	}
	return nil
}

// SetActive selects the ball drawn in play; an empty id selects the
// default ball. The payload is decoded here, once. If the ball is missing
// or cannot be decoded the selection falls back to the default ball, the
// problem is logged, and SetActive reports false.
func (r *Registry) SetActive(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeID = ""
	r.active = nil
	if id == "" {
		return true
	}

	rec, err := r.repo.Ball(id)
	if err != nil {
		r.logger.Warn("Cannot load custom ball", "id", id, "error", err)
		return false
	}
	if rec == nil {
		r.logger.Warn("Unknown custom ball", "id", id)
		return false
	}

	img, err := Decode(rec.Payload, SpriteSize)
	if err != nil {
		r.logger.Warn("Cannot decode custom ball, using default ball", "id", id, "name", rec.Name, "error", err)
		return false
	}

	r.activeID = id
	r.active = &core.Sprite{ID: rec.ID, Name: rec.Name, Image: img}
	r.logger.Info("Custom ball active", "name", rec.Name)
	return true
}

// Active returns the decoded active ball, or nil for the default ball.
func (r *Registry) Active() *core.Sprite {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ActiveID returns the id of the active ball, or "".
func (r *Registry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// List returns every stored ball in the order they were added.
func (r *Registry) List() ([]Entry, error) {
	records, err := r.repo.ListBalls()
	if err != nil {
		return nil, fmt.Errorf("balls: cannot list: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, Entry{ID: rec.ID, Name: rec.Name, Active: rec.ID == r.activeID})
	}
	return entries, nil
}

// Cycle activates the ball after the current one, then the default ball,
// then the first one again. It returns the new active entry name.
func (r *Registry) Cycle() string {
	entries, err := r.List()
	if err != nil || len(entries) == 0 {
		return "Default"
	}

	current := r.ActiveID()
	next := entries[0].ID
	for i, e := range entries {
		if e.ID == current {
			if i+1 < len(entries) {
				next = entries[i+1].ID
			} else {
				next = ""
			}
			break
		}
	}

	if !r.SetActive(next) || next == "" {
		return "Default"
	}
	return r.Active().Name
}
