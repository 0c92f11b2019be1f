package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the remote REST data store (PostgREST dialect): creation
// returns the stored representation, PATCH touches only named fields, and
// filters ride in the query string.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Reconfigure applies backend config changes live.
func (c *Client) Reconfigure(baseURL, apiKey string, timeout time.Duration) {
	c.baseURL = baseURL
	c.apiKey = apiKey
	if timeout > 0 {
		c.http.Timeout = timeout
	}
}

// Ping verifies the store is reachable.
func (c *Client) Ping() error {
	var out []Installation
	return c.get("/laptop_installations?select=id&limit=1", &out)
}

func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return req, nil
}

func (c *Client) do(method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := c.newRequest(method, path, rdr)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(path string, out any) error    { return c.do(http.MethodGet, path, nil, out) }
func (c *Client) post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}
func (c *Client) patch(path string, body, out any) error {
	return c.do(http.MethodPatch, path, body, out)
}
func (c *Client) delete(path string) error { return c.do(http.MethodDelete, path, nil, nil) }

func esc(v string) string { return url.QueryEscape(v) }
