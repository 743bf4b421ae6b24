// Package store provides the storage interface and the in-memory
// implementation for configurator projects and rooms.
package store

import (
	"context"

	"github.com/avforge/configurator/pkg/models"
)

// Store is the primary storage interface for the configurator.
// Handler code depends on this interface only.
type Store interface {
	ProjectStore
	RoomStore

	// Ping checks if the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the store.
	Close() error
}

// ── Project Store ───────────────────────────────────────────

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	// DeleteProject removes the project and all of its rooms.
	DeleteProject(ctx context.Context, id string) error
}

// ── Room Store ──────────────────────────────────────────────

type RoomStore interface {
	ListRooms(ctx context.Context, projectID string) ([]models.Room, error)
	GetRoom(ctx context.Context, projectID, roomID string) (*models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, projectID, roomID string) error
}

// ErrNotFound is returned when a requested entity does not exist.
type ErrNotFound struct {
	Entity string
	Key    string
}

func (e *ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.Key
}
