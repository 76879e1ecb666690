package store

import (
	"context"
	"encoding/json"
	"sync"

	"waterBuddyAPI/internal/user"
)

// Memory is a map-backed Repository used by tests. Records round-trip
// through JSON so tests exercise the same serialization path as Postgres.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Create(_ context.Context, record *user.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.Username]; ok {
		return ErrAlreadyExists
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	m.records[record.Username] = raw
	return nil
}

func (m *Memory) Load(_ context.Context, username string) (*user.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.records[username]
	if !ok {
		return nil, ErrNotFound
	}

	record := &user.Record{}
	if err := json.Unmarshal(raw, record); err != nil {
		record = &user.Record{Username: username}
	}
	record.Username = username
	record.Normalize()
	return record, nil
}

func (m *Memory) Save(_ context.Context, record *user.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.Username]; !ok {
		return ErrNotFound
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	m.records[record.Username] = raw
	return nil
}

func (m *Memory) Exists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.records[username]
	return ok, nil
}

// Corrupt overwrites a stored record with unparseable bytes, for tests that
// cover the corrupt-state recovery path.
func (m *Memory) Corrupt(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[username] = []byte("{not json")
}
