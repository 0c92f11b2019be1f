package backend

import (
	"fmt"
	"time"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
)

type Event struct {
	ID          int64      `json:"id,omitempty"`
	Name        string     `json:"name"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Zones       []string   `json:"zones,omitempty"`
}

// ListEvents returns all current (non-archived) events.
func (c *Client) ListEvents() ([]Event, error) {
	var out []Event
	if err := c.get("/future_events?select=*&order=start_date.desc", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent returns one event by id, or nil if absent.
func (c *Client) GetEvent(id int64) (*Event, error) {
	var out []Event
	if err := c.get(fmt.Sprintf("/future_events?select=*&id=eq.%d", id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (c *Client) CreateEvent(ev *Event) (*Event, error) {
	var out []Event
	if err := c.post("/future_events", ev, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("create event: empty representation")
	}
	return &out[0], nil
}

func (c *Client) UpdateEvent(id int64, fields map[string]any) (*Event, error) {
	var out []Event
	if err := c.patch(fmt.Sprintf("/future_events?id=eq.%d", id), fields, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("update event %d: empty representation", id)
	}
	return &out[0], nil
}

// CompleteEvent flips an event to completed without removing it.
func (c *Client) CompleteEvent(id int64) error {
	return c.patch(fmt.Sprintf("/future_events?id=eq.%d", id),
		map[string]any{"status": EventStatusCompleted}, nil)
}

func (c *Client) DeleteEvent(id int64) error {
	return c.delete(fmt.Sprintf("/future_events?id=eq.%d", id))
}

// ListArchivedEvents returns past events.
func (c *Client) ListArchivedEvents() ([]Event, error) {
	var out []Event
	if err := c.get("/past_events?select=*&order=event_date.desc", &out); err != nil {
		return nil, err
	}
	return out, nil
}
