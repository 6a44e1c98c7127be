package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Raw exposes the reduced verb surface adapters publish as their raw API
// escape hatch. Responses come back as undecoded JSON.
type Raw struct {
	c *Client
}

// Raw returns the undecoded verb surface of the client.
func (c *Client) Raw() *Raw {
	return &Raw{c: c}
}

func (r *Raw) exec(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	resp, err := r.c.Do(ctx, Request{Method: method, Path: path, Query: query, Body: body})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

// Get issues a GET and returns the undecoded body.
func (r *Raw) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return r.exec(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON body and returns the undecoded response.
func (r *Raw) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return r.exec(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body and returns the undecoded response.
func (r *Raw) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return r.exec(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH with a JSON body and returns the undecoded response.
func (r *Raw) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return r.exec(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE and returns the undecoded response.
func (r *Raw) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return r.exec(ctx, http.MethodDelete, path, nil, nil)
}
