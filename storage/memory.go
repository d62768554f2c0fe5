package storage

import (
	"context"
	"sync"

	"github.com/darshan87986/CommunityHub/models"
	"github.com/darshan87986/CommunityHub/store"
)

// Memory keeps events and the session record in process memory. Used when
// no MONGODB_URI is configured, and by tests.
type Memory struct {
	mu      sync.Mutex
	events  []models.Event
	session store.SessionRecord
	hasRec  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListEvents(_ context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *Memory) CreateEvent(_ context.Context, ev models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) UpdateEvent(_ context.Context, ev models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == ev.ID {
			m.events[i] = ev
			return nil
		}
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) Save(_ context.Context, rec store.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = rec
	m.hasRec = true
	return nil
}

func (m *Memory) Load(_ context.Context) (store.SessionRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.hasRec, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = store.SessionRecord{}
	m.hasRec = false
	return nil
}
