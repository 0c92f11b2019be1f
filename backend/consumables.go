package backend

import (
	"fmt"
	"time"
)

// Consumable is a label roll or ribbon stock line tied to one printer type.
// Read-only from the wizard/notification side; quantities change elsewhere.
type Consumable struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	MinQuantity   int        `json:"min_quantity"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	LastUpdatedBy string     `json:"last_updated_by,omitempty"`
}

func consumablesTable(printerType string) (string, error) {
	switch printerType {
	case "brother":
		return "/brother_consumables", nil
	case "godex":
		return "/godex_consumables", nil
	default:
		return "", fmt.Errorf("unknown printer type: %s", printerType)
	}
}

// ListConsumables returns the stock lines for one printer type.
func (c *Client) ListConsumables(printerType string) ([]Consumable, error) {
	table, err := consumablesTable(printerType)
	if err != nil {
		return nil, err
	}
	var out []Consumable
	if err := c.get(table+"?select=*&order=name.asc", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateConsumableQuantity sets a new quantity and stamps the actor.
func (c *Client) UpdateConsumableQuantity(printerType string, id int64, quantity int, updatedBy string) (*Consumable, error) {
	table, err := consumablesTable(printerType)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{"quantity": quantity}
	if updatedBy != "" {
		fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		fields["last_updated_by"] = updatedBy
	}
	var out []Consumable
	if err := c.patch(fmt.Sprintf("%s?id=eq.%d", table, id), fields, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("update consumable %d: empty representation", id)
	}
	return &out[0], nil
}
