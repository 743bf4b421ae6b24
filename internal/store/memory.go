// MemoryStore keeps projects and rooms in maps and can snapshot them
// to a JSON file so they survive restarts.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/avforge/configurator/pkg/models"
	"github.com/rs/zerolog/log"
)

// snapshot is the JSON-serializable shape written to disk.
type snapshot struct {
	Projects map[string]*models.Project `json:"projects"`
	Rooms    map[string]*models.Room    `json:"rooms"` // key: project:room
}

// MemoryStore implements Store with in-memory maps.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*models.Project // key: id
	rooms    map[string]*models.Room    // key: project:room

	// Persistence
	snapshotPath string        // empty = no persistence
	saveMu       sync.Mutex    // guards file writes
	saveCh       chan struct{} // debounce channel
	doneCh       chan struct{} // signals background goroutines to stop
}

// NewMemoryStore creates a new in-memory store. When dataDir is non-empty,
// data is persisted to data.json in that directory.
func NewMemoryStore(dataDir string) *MemoryStore {
	m := &MemoryStore{
		projects: make(map[string]*models.Project),
		rooms:    make(map[string]*models.Room),
		saveCh:   make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}

	if dataDir != "" {
		m.snapshotPath = filepath.Join(dataDir, "data.json")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Warn().Err(err).Str("dir", dataDir).Msg("Cannot create data dir, persistence disabled")
			m.snapshotPath = ""
		}
	}

	if m.snapshotPath != "" {
		m.loadSnapshot()
		go m.saveLoop()
	}

	log.Info().
		Str("snapshot", m.snapshotPath).
		Msg("Memory store configured")

	return m
}

// requestSave schedules a debounced snapshot write.
func (m *MemoryStore) requestSave() {
	if m.snapshotPath == "" {
		return
	}
	select {
	case m.saveCh <- struct{}{}:
	default:
	}
}

func (m *MemoryStore) saveLoop() {
	for {
		select {
		case <-m.doneCh:
			return
		case <-m.saveCh:
			time.Sleep(500 * time.Millisecond) // debounce
			m.saveSnapshot()
		}
	}
}

// saveSnapshot persists all data to disk as JSON.
func (m *MemoryStore) saveSnapshot() {
	m.mu.RLock()
	data, err := json.MarshalIndent(snapshot{Projects: m.projects, Rooms: m.rooms}, "", "  ")
	m.mu.RUnlock()

	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal snapshot")
		return
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	// Write to temp file then rename for atomicity
	tmp := m.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		log.Error().Err(err).Str("path", tmp).Msg("Failed to write snapshot tmp")
		return
	}
	if err := os.Rename(tmp, m.snapshotPath); err != nil {
		log.Error().Err(err).Str("path", m.snapshotPath).Msg("Failed to rename snapshot")
		return
	}

	log.Debug().Str("path", m.snapshotPath).Msg("Snapshot saved")
}

// loadSnapshot reads data from disk on startup.
func (m *MemoryStore) loadSnapshot() {
	data, err := os.ReadFile(m.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", m.snapshotPath).Msg("No snapshot file found, starting fresh")
			return
		}
		log.Warn().Err(err).Str("path", m.snapshotPath).Msg("Failed to read snapshot")
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Error().Err(err).Str("path", m.snapshotPath).Msg("Failed to parse snapshot, starting fresh")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.Projects != nil {
		m.projects = snap.Projects
	}
	if snap.Rooms != nil {
		m.rooms = snap.Rooms
	}

	log.Info().
		Int("projects", len(m.projects)).
		Int("rooms", len(m.rooms)).
		Str("path", m.snapshotPath).
		Msg("Snapshot loaded")
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// Close stops the save loop and forces a final snapshot write.
// Safe to call multiple times (second call is a no-op).
func (m *MemoryStore) Close() error {
	select {
	case <-m.doneCh:
		return nil
	default:
		close(m.doneCh)
	}

	if m.snapshotPath != "" {
		log.Info().Msg("Flushing final snapshot before shutdown...")
		m.saveSnapshot()
	}

	log.Info().Msg("Memory store closed")
	return nil
}

func roomKey(projectID, roomID string) string {
	return projectID + ":" + roomID
}

// ── Projects ────────────────────────────────────────────────

func (m *MemoryStore) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, &ErrNotFound{Entity: "project", Key: id}
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) CreateProject(_ context.Context, project *models.Project) error {
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	m.mu.Lock()
	cp := *project
	m.projects[project.ID] = &cp
	m.mu.Unlock()

	m.requestSave()
	return nil
}

func (m *MemoryStore) UpdateProject(_ context.Context, project *models.Project) error {
	m.mu.Lock()
	existing, ok := m.projects[project.ID]
	if !ok {
		m.mu.Unlock()
		return &ErrNotFound{Entity: "project", Key: project.ID}
	}
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now().UTC()
	cp := *project
	m.projects[project.ID] = &cp
	m.mu.Unlock()

	m.requestSave()
	return nil
}

func (m *MemoryStore) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	if _, ok := m.projects[id]; !ok {
		m.mu.Unlock()
		return &ErrNotFound{Entity: "project", Key: id}
	}
	delete(m.projects, id)
	for k, r := range m.rooms {
		if r.ProjectID == id {
			delete(m.rooms, k)
		}
	}
	m.mu.Unlock()

	m.requestSave()
	return nil
}

// ── Rooms ───────────────────────────────────────────────────

func (m *MemoryStore) ListRooms(_ context.Context, projectID string) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.projects[projectID]; !ok {
		return nil, &ErrNotFound{Entity: "project", Key: projectID}
	}
	out := make([]models.Room, 0)
	for _, r := range m.rooms {
		if r.ProjectID == projectID {
			out = append(out, cloneRoom(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetRoom(_ context.Context, projectID, roomID string) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[roomKey(projectID, roomID)]
	if !ok {
		return nil, &ErrNotFound{Entity: "room", Key: roomID}
	}
	cp := cloneRoom(r)
	return &cp, nil
}

func (m *MemoryStore) CreateRoom(_ context.Context, room *models.Room) error {
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	m.mu.Lock()
	if _, ok := m.projects[room.ProjectID]; !ok {
		m.mu.Unlock()
		return &ErrNotFound{Entity: "project", Key: room.ProjectID}
	}
	cp := cloneRoom(room)
	m.rooms[roomKey(room.ProjectID, room.ID)] = &cp
	m.mu.Unlock()

	m.requestSave()
	return nil
}

func (m *MemoryStore) UpdateRoom(_ context.Context, room *models.Room) error {
	k := roomKey(room.ProjectID, room.ID)

	m.mu.Lock()
	existing, ok := m.rooms[k]
	if !ok {
		m.mu.Unlock()
		return &ErrNotFound{Entity: "room", Key: room.ID}
	}
	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = time.Now().UTC()
	cp := cloneRoom(room)
	m.rooms[k] = &cp
	m.mu.Unlock()

	m.requestSave()
	return nil
}

func (m *MemoryStore) DeleteRoom(_ context.Context, projectID, roomID string) error {
	k := roomKey(projectID, roomID)

	m.mu.Lock()
	if _, ok := m.rooms[k]; !ok {
		m.mu.Unlock()
		return &ErrNotFound{Entity: "room", Key: roomID}
	}
	delete(m.rooms, k)
	m.mu.Unlock()

	m.requestSave()
	return nil
}

// cloneRoom copies every slice and pointer so callers never share state
// with the store.
func cloneRoom(r *models.Room) models.Room {
	cp := *r
	cp.Selection = r.Selection.Clone()

	req := &cp.Requirement
	req.IOPoints = append([]models.IOPoint(nil), r.Requirement.IOPoints...)
	req.Features = append([]models.Feature(nil), r.Requirement.Features...)
	req.Technical.SignalTypes = append([]models.ConnectorKind(nil), r.Requirement.Technical.SignalTypes...)
	if r.Requirement.VideoWall != nil {
		vw := *r.Requirement.VideoWall
		req.VideoWall = &vw
	}
	if r.Requirement.BudgetCeiling != nil {
		b := *r.Requirement.BudgetCeiling
		req.BudgetCeiling = &b
	}
	return cp
}
