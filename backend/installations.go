package backend

import (
	"fmt"
	"time"
)

// Installation is a committed rack assignment: one laptop, up to two
// printers, optionally tied to an event. While it exists its equipment
// numbers are off the free pool.
type Installation struct {
	ID                  int64      `json:"id,omitempty"`
	EventID             *int64     `json:"event_id,omitempty"`
	Rack                string     `json:"rack"`
	Laptop              int        `json:"laptop"`
	PrinterType         *string    `json:"printer_type"`
	PrinterNumber       *int       `json:"printer_number"`
	SecondPrinterType   *string    `json:"second_printer_type"`
	SecondPrinterNumber *int       `json:"second_printer_number"`
	UserID              string     `json:"user_id,omitempty"`
	Username            string     `json:"username,omitempty"`
	Date                *time.Time `json:"date,omitempty"`
	Status              string     `json:"status,omitempty"`
}

// ListInstallations returns all active (committed) installations.
func (c *Client) ListInstallations() ([]Installation, error) {
	var out []Installation
	if err := c.get("/laptop_installations?select=*&order=date.desc", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListInstallationsByZone returns active installations whose rack is in the zone.
func (c *Client) ListInstallationsByZone(zone string) ([]Installation, error) {
	var out []Installation
	path := fmt.Sprintf("/laptop_installations?select=*&rack=like.%s*&order=rack.asc", esc(zone))
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInstallationByRack returns the newest installation on a rack, or nil.
func (c *Client) GetInstallationByRack(rack string) (*Installation, error) {
	var out []Installation
	path := fmt.Sprintf("/laptop_installations?select=*&rack=eq.%s&order=date.desc&limit=1", esc(rack))
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// CreateInstallation persists one installation and returns the stored record
// with its server-assigned id.
func (c *Client) CreateInstallation(inst *Installation) (*Installation, error) {
	var out []Installation
	if err := c.post("/laptop_installations", inst, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("create installation: empty representation")
	}
	return &out[0], nil
}

// UpdateInstallation patches only the named fields.
func (c *Client) UpdateInstallation(id int64, fields map[string]any) (*Installation, error) {
	var out []Installation
	path := fmt.Sprintf("/laptop_installations?id=eq.%d", id)
	if err := c.patch(path, fields, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("update installation %d: empty representation", id)
	}
	return &out[0], nil
}

// CompleteInstallation archives an installation. The store treats this as a
// hard delete from the active collection; its numbers return to the free pool.
func (c *Client) CompleteInstallation(id int64) error {
	return c.delete(fmt.Sprintf("/laptop_installations?id=eq.%d", id))
}

// ListLaptopHistory returns the installation history of one laptop.
func (c *Client) ListLaptopHistory(laptop int) ([]Installation, error) {
	var out []Installation
	path := fmt.Sprintf("/laptop_installations?select=*&laptop=eq.%d&order=date.desc", laptop)
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListArchivedInstallations returns completed installations.
func (c *Client) ListArchivedInstallations() ([]Installation, error) {
	var out []Installation
	if err := c.get("/past_laptop_installations?select=*&order=date.desc", &out); err != nil {
		return nil, err
	}
	return out, nil
}
