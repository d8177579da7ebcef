// Package backend contains one API module per business entity. Each function
// issues exactly one transport call and returns the payload unchanged; errors
// are returned as they come from the transport.
package backend

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resource implements the list/detail/create/update/delete template shared by
// every entity collection mounted at base.
type Resource[T, In any] struct {
	transport ports.Transport
	base      string
}

// NewResource creates a Resource for the collection at base, e.g. "/products".
func NewResource[T, In any](t ports.Transport, base string) Resource[T, In] {
	return Resource[T, In]{transport: t, base: base}
}

// Base returns the collection path.
func (r Resource[T, In]) Base() string {
	return r.base
}

// List fetches one page of the collection.
func (r Resource[T, In]) List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error) {
	return send[domain.Page[T]](ctx, r.transport, &ports.Request{
		Method: http.MethodGet,
		Path:   r.base,
		Query:  params.Values(),
	})
}

// Get fetches one record.
func (r Resource[T, In]) Get(ctx context.Context, id string) (*T, error) {
	p, err := r.item(id)
	if err != nil {
		return nil, err
	}
	return send[T](ctx, r.transport, &ports.Request{Method: http.MethodGet, Path: p})
}

// Create posts a new record and returns it as stored.
func (r Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	return send[T](ctx, r.transport, &ports.Request{Method: http.MethodPost, Path: r.base, Body: in})
}

// Update replaces the record id.
func (r Resource[T, In]) Update(ctx context.Context, id string, in In) (*T, error) {
	p, err := r.item(id)
	if err != nil {
		return nil, err
	}
	return send[T](ctx, r.transport, &ports.Request{Method: http.MethodPut, Path: p, Body: in})
}

// Delete removes the record id.
func (r Resource[T, In]) Delete(ctx context.Context, id string) error {
	p, err := r.item(id)
	if err != nil {
		return err
	}
	return remove(ctx, r.transport, p)
}

// SetStatus toggles the active flag of id.
func (r Resource[T, In]) SetStatus(ctx context.Context, id string, active bool) (*T, error) {
	p, err := r.item(id, "status")
	if err != nil {
		return nil, err
	}
	return send[T](ctx, r.transport, &ports.Request{
		Method: http.MethodPatch,
		Path:   p,
		Body:   domain.StatusInput{Active: active},
	})
}

// Export downloads the filtered collection as a spreadsheet.
func (r Resource[T, In]) Export(ctx context.Context, params domain.ListParams) ([]byte, error) {
	return binary(ctx, r.transport, path.Join(r.base, "export"), params.Values())
}

// Import uploads a spreadsheet and returns the per-row report.
func (r Resource[T, In]) Import(ctx context.Context, file ports.Upload) (*domain.ImportResult, error) {
	if file.Field == "" {
		file.Field = "file"
	}
	return send[domain.ImportResult](ctx, r.transport, &ports.Request{
		Method: http.MethodPost,
		Path:   path.Join(r.base, "import"),
		Upload: &file,
	})
}

// item builds base/id/suffix... with id escaped.
func (r Resource[T, In]) item(id string, suffix ...string) (string, error) {
	return joinID(r.base, id, suffix...)
}

func joinID(base, id string, suffix ...string) (string, error) {
	if id == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrMissingID, "id is required"), "path", base)
	}
	parts := append([]string{base, url.PathEscape(id)}, suffix...)
	return path.Join(parts...), nil
}

// send issues req and decodes the JSON answer into a fresh R.
func send[R any](ctx context.Context, t ports.Transport, req *ports.Request) (*R, error) {
	out := new(R)
	req.Result = out
	if _, err := t.Do(ctx, req); err != nil {
		return nil, err
	}
	return out, nil
}

// list issues a GET and decodes a JSON array.
func list[R any](ctx context.Context, t ports.Transport, p string) ([]R, error) {
	out, err := send[[]R](ctx, t, &ports.Request{Method: http.MethodGet, Path: p})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// binary issues a GET and returns the raw body.
func binary(ctx context.Context, t ports.Transport, p string, query url.Values) ([]byte, error) {
	resp, err := t.Do(ctx, &ports.Request{
		Method:       http.MethodGet,
		Path:         p,
		Query:        query,
		ResponseType: ports.ResponseBinary,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// remove issues a DELETE.
func remove(ctx context.Context, t ports.Transport, p string) error {
	_, err := t.Do(ctx, &ports.Request{Method: http.MethodDelete, Path: p})
	return err
}
