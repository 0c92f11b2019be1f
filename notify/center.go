package notify

import (
	"log"
	"sync"
	"time"

	"expotrack/backend"
)

// DataSource supplies the three read snapshots the deriver scans.
type DataSource interface {
	ListInstallations() ([]backend.Installation, error)
	ListEvents() ([]backend.Event, error)
	ListConsumables(printerType string) ([]backend.Consumable, error)
}

// AckStore persists the read-acknowledgement set across restarts.
type AckStore interface {
	ListNotificationAcks() ([]string, error)
	MarkNotificationRead(id string) error
}

// Refreshed is called after every recomputation, so listeners can react
// without the center knowing who they are.
type Refreshed func(unread int)

// Center owns the derived notification list: it recomputes wholesale on a
// fixed interval and on demand, and keeps acknowledgements keyed by
// identifier so a rebuilt list preserves read state.
type Center struct {
	source    DataSource
	acks      AckStore
	interval  time.Duration
	refreshed Refreshed
	logf      func(format string, args ...any)

	mu       sync.Mutex
	list     []Notification
	acked    map[string]bool
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewCenter(source DataSource, acks AckStore, interval time.Duration, refreshed Refreshed) *Center {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	c := &Center{
		source:    source,
		acks:      acks,
		interval:  interval,
		refreshed: refreshed,
		logf:      log.Printf,
		acked:     make(map[string]bool),
		stopChan:  make(chan struct{}),
	}
	c.loadAcks()
	return c
}

func (c *Center) loadAcks() {
	ids, err := c.acks.ListNotificationAcks()
	if err != nil {
		c.logf("notify: load acks: %v", err)
		return
	}
	c.mu.Lock()
	for _, id := range ids {
		c.acked[id] = true
	}
	c.mu.Unlock()
}

// Start derives immediately, then on every tick until Stop.
func (c *Center) Start() {
	c.Refresh()
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stopChan:
				return
			case <-ticker.C:
				c.Refresh()
			}
		}
	}()
}

// Stop ends the refresh loop. Closing the channel means the signal cannot be
// lost while the loop is mid-refresh, and a second Stop is a no-op.
func (c *Center) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

// Refresh rebuilds the list from fresh snapshots. Each source is fetched
// independently so one failing collection does not silence the other rules.
func (c *Center) Refresh() {
	in := Input{Now: time.Now()}

	for _, pt := range []string{"brother", "godex"} {
		items, err := c.source.ListConsumables(pt)
		if err != nil {
			c.logf("notify: fetch %s consumables: %v", pt, err)
			continue
		}
		for _, item := range items {
			in.Consumables = append(in.Consumables, TypedConsumable{Type: pt, Consumable: item})
		}
	}

	if events, err := c.source.ListEvents(); err != nil {
		c.logf("notify: fetch events: %v", err)
	} else {
		in.Events = events
	}

	if installs, err := c.source.ListInstallations(); err != nil {
		c.logf("notify: fetch installations: %v", err)
	} else {
		in.Installations = installs
	}

	c.mu.Lock()
	acked := make(map[string]bool, len(c.acked))
	for id := range c.acked {
		acked[id] = true
	}
	c.mu.Unlock()

	list := Derive(in, acked)

	c.mu.Lock()
	c.list = list
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	c.mu.Unlock()

	if c.refreshed != nil {
		c.refreshed(unread)
	}
}

// List returns a copy of the current derived list.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.list))
	copy(out, c.list)
	return out
}

// UnreadCount returns how many derived notifications are unacknowledged.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.list {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkAsRead acknowledges one identifier and persists it.
func (c *Center) MarkAsRead(id string) error {
	c.mu.Lock()
	c.acked[id] = true
	for i := range c.list {
		if c.list[i].ID == id {
			c.list[i].Read = true
		}
	}
	c.mu.Unlock()
	return c.acks.MarkNotificationRead(id)
}

// MarkAllAsRead acknowledges every identifier currently in the derived list.
func (c *Center) MarkAllAsRead() error {
	c.mu.Lock()
	ids := make([]string, 0, len(c.list))
	for i := range c.list {
		ids = append(ids, c.list[i].ID)
		c.acked[c.list[i].ID] = true
		c.list[i].Read = true
	}
	c.mu.Unlock()

	for _, id := range ids {
		if err := c.acks.MarkNotificationRead(id); err != nil {
			return err
		}
	}
	return nil
}
