package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// HTTPClient talks to the flowstate task service over its JSON REST API.
// It implements both Client and TagClient.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// FetchAll returns all task records for the identity.
func (c *HTTPClient) FetchAll(ctx context.Context, identity string) ([]Record, error) {
	var records []Record
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(identity), nil, &records)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return records, nil
}

// Create persists a new task record and returns the stored record,
// including the durable id the service assigned.
func (c *HTTPClient) Create(ctx context.Context, identity string, rec Record) (Record, error) {
	payload := struct {
		Record
		Email string `json:"email"`
	}{Record: rec, Email: identity}

	var created Record
	if err := c.do(ctx, http.MethodPost, "/api/tasks", payload, &created); err != nil {
		return Record{}, fmt.Errorf("creating task: %w", err)
	}
	return created, nil
}

// Update applies a partial field map to the record.
func (c *HTTPClient) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), fields, nil); err != nil {
		return fmt.Errorf("updating task %s: %w", id, err)
	}
	return nil
}

// Delete removes the record by id.
func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// FetchTags returns all tags for the identity.
func (c *HTTPClient) FetchTags(ctx context.Context, identity string) ([]TagRecord, error) {
	var tags []TagRecord
	if err := c.do(ctx, http.MethodGet, "/api/tags/"+url.PathEscape(identity), nil, &tags); err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag for the identity.
func (c *HTTPClient) CreateTag(ctx context.Context, identity, name, description string) (TagRecord, error) {
	payload := TagRecord{Email: identity, TagName: name, Description: description}
	var created TagRecord
	if err := c.do(ctx, http.MethodPost, "/api/tags", payload, &created); err != nil {
		return TagRecord{}, fmt.Errorf("creating tag %q: %w", name, err)
	}
	return created, nil
}

// UpdateTagDescription replaces a tag's description.
func (c *HTTPClient) UpdateTagDescription(ctx context.Context, identity, name, description string) error {
	path := "/api/tags/" + url.PathEscape(identity) + "/" + url.PathEscape(name) + "/description"
	payload := map[string]string{"tag_description": description}
	if err := c.do(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("updating tag %q: %w", name, err)
	}
	return nil
}

// DeleteTag removes a tag by name. Tasks bearing the tag are untouched;
// cascade policy belongs to the caller.
func (c *HTTPClient) DeleteTag(ctx context.Context, identity, name string) error {
	path := "/api/tags/" + url.PathEscape(identity) + "/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting tag %q: %w", name, err)
	}
	return nil
}

// do performs a JSON request/response round trip.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
