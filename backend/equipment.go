package backend

import "fmt"

// Unit is one physical equipment item in a pool.
type Unit struct {
	ID            int64  `json:"id"`
	Name          string `json:"name,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	MACAddress    string `json:"mac_address,omitempty"`
	IPAddress     string `json:"ip_address,omitempty"`
	Specification string `json:"specification,omitempty"`
	Status        string `json:"status,omitempty"`
}

func (c *Client) ListLaptops() ([]Unit, error) {
	var out []Unit
	if err := c.get("/laptops?select=*&order=id.asc", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetLaptop(id int64) (*Unit, error) {
	var out []Unit
	if err := c.get(fmt.Sprintf("/laptops?select=*&id=eq.%d", id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func printersTable(printerType string) (string, error) {
	switch printerType {
	case "brother":
		return "/brother_printers", nil
	case "godex":
		return "/godex_printers", nil
	default:
		return "", fmt.Errorf("unknown printer type: %s", printerType)
	}
}

func (c *Client) ListPrinters(printerType string) ([]Unit, error) {
	table, err := printersTable(printerType)
	if err != nil {
		return nil, err
	}
	var out []Unit
	if err := c.get(table+"?select=*&order=id.asc", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPrinter(printerType string, id int64) (*Unit, error) {
	table, err := printersTable(printerType)
	if err != nil {
		return nil, err
	}
	var out []Unit
	if err := c.get(fmt.Sprintf("%s?select=*&id=eq.%d", table, id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}
