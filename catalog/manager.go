package catalog

import (
	"context"
	"log"

	"expotrack/backend"
)

const (
	snapInstallations = "installations"
	snapEvents        = "events"
	snapConsumables   = "consumables:" // + printer type
)

// Manager is a read-through snapshot cache over the remote store: Redis
// first, direct fetch on miss or Redis trouble. The committed snapshots it
// serves are read-only for callers; the only writer is the remote store,
// and cached collections are replaced wholesale on refetch.
type Manager struct {
	remote *backend.Client
	redis  *RedisStore
	logf   func(format string, args ...any)
}

func NewManager(remote *backend.Client, redis *RedisStore) *Manager {
	return &Manager{remote: remote, redis: redis, logf: log.Printf}
}

// ListInstallations returns the committed-installation snapshot.
func (m *Manager) ListInstallations() ([]backend.Installation, error) {
	ctx := context.Background()
	var cached []backend.Installation
	if m.redis != nil {
		if ok, err := m.redis.GetSnapshot(ctx, snapInstallations, &cached); err == nil && ok {
			return cached, nil
		}
	}
	installs, err := m.remote.ListInstallations()
	if err != nil {
		return nil, err
	}
	m.putSnapshot(ctx, snapInstallations, installs)
	return installs, nil
}

// ListEvents returns the events snapshot.
func (m *Manager) ListEvents() ([]backend.Event, error) {
	ctx := context.Background()
	var cached []backend.Event
	if m.redis != nil {
		if ok, err := m.redis.GetSnapshot(ctx, snapEvents, &cached); err == nil && ok {
			return cached, nil
		}
	}
	events, err := m.remote.ListEvents()
	if err != nil {
		return nil, err
	}
	m.putSnapshot(ctx, snapEvents, events)
	return events, nil
}

// ListConsumables returns the consumables snapshot for one printer type.
func (m *Manager) ListConsumables(printerType string) ([]backend.Consumable, error) {
	ctx := context.Background()
	name := snapConsumables + printerType
	var cached []backend.Consumable
	if m.redis != nil {
		if ok, err := m.redis.GetSnapshot(ctx, name, &cached); err == nil && ok {
			return cached, nil
		}
	}
	items, err := m.remote.ListConsumables(printerType)
	if err != nil {
		return nil, err
	}
	m.putSnapshot(ctx, name, items)
	return items, nil
}

// Invalidate drops every snapshot so the next read refetches.
func (m *Manager) Invalidate() {
	if m.redis == nil {
		return
	}
	err := m.redis.Drop(context.Background(),
		snapInstallations, snapEvents,
		snapConsumables+"brother", snapConsumables+"godex")
	if err != nil {
		m.logf("catalog: invalidate snapshots: %v", err)
	}
}

func (m *Manager) putSnapshot(ctx context.Context, name string, v any) {
	if m.redis == nil {
		return
	}
	if err := m.redis.SetSnapshot(ctx, name, v); err != nil {
		m.logf("catalog: cache %s snapshot: %v", name, err)
	}
}
