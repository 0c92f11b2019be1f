package backend

import (
	"fmt"
	"time"
)

// Activity is one audit record. Writes are best-effort at every call site:
// a failed append must never abort the action that triggered it.
type Activity struct {
	ID         int64      `json:"id,omitempty"`
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	ActionType string     `json:"action_type"`
	ItemType   string     `json:"item_type"`
	ItemID     *int64     `json:"item_id,omitempty"`
	ItemName   string     `json:"item_name"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

const (
	ActionCreateInstallation   = "create_installation"
	ActionCompleteInstallation = "complete_installation"
	ActionCreateEvent          = "create_event"
	ActionCompleteEvent        = "complete_event"
	ActionDeleteEvent          = "delete_event"
	ActionUpdateConsumable     = "update_consumable"
)

// AppendActivity writes one audit record.
func (c *Client) AppendActivity(a *Activity) error {
	var out []Activity
	if err := c.post("/activity_log", a, &out); err != nil {
		return err
	}
	if len(out) > 0 {
		a.ID = out[0].ID
	}
	return nil
}

// ListRecentActivity returns the newest audit records.
func (c *Client) ListRecentActivity(limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Activity
	path := fmt.Sprintf("/activity_log?select=*&order=created_at.desc&limit=%d", limit)
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
