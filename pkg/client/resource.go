package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Resource is a typed client for one REST collection of the clinic API, e.g.
// /api/appointments. The API answers with either a bare document or one wrapped
// in {"data": ...}; both are accepted.
type Resource[T any] struct {
	http *HttpClient
	path string
}

func NewResource[T any](c *HttpClient, path string) *Resource[T] {
	return &Resource[T]{http: c, path: path}
}

func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	resp, err := r.http.GET(ctx, r.path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	resp, err := r.http.GET(ctx, r.itemPath(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[T](resp)
}

func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	resp, err := r.http.POST(ctx, r.path, body)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](resp)
}

func (r *Resource[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	resp, err := r.http.PUT(ctx, r.itemPath(id), body)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](resp)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.http.DELETE(ctx, r.itemPath(id))
	return err
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func decodeOne[T any](resp *Response) (*T, error) {
	var out T
	if len(resp.Body) == 0 {
		return &out, nil
	}
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func decodeEnvelope(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	body := resp.Body
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Data) > 0 {
		body = wrapper.Data
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("could not decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
