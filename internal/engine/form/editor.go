// Package form implements the edit flow shared by every entity form:
// viewing, editing a draft, submitting it through a create or update
// mutation, and mapping server validation errors onto draft fields.
package form

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Phase is the state of an Editor.
type Phase uint8

// Editor phases.
const (
	Viewing Phase = iota
	Editing
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// CreateFunc submits a draft for a new entity.
type CreateFunc[In any] func(ctx context.Context, draft In) error

// UpdateFunc submits a draft for an existing entity.
type UpdateFunc[E, In any] func(ctx context.Context, existing E, draft In) error

// Editor drives one entity form. E is the entity, In its create/update payload.
type Editor[E, In any] struct {
	create   CreateFunc[In]
	update   UpdateFunc[E, In]
	seed     func(E) In
	defaults func() In
	fields   map[string]struct{}

	mu       sync.Mutex
	phase    Phase
	existing *E
	draft    In
	errs     map[string]string
	global   error
}

// Option configures an Editor.
type Option[E, In any] func(*Editor[E, In])

// WithDefaults sets the draft used when creating a new entity.
func WithDefaults[E, In any](fn func() In) Option[E, In] {
	return func(e *Editor[E, In]) { e.defaults = fn }
}

// New creates an Editor. seed turns an existing entity into its draft.
func New[E, In any](seed func(E) In, create CreateFunc[In], update UpdateFunc[E, In], opts ...Option[E, In]) *Editor[E, In] {
	e := &Editor[E, In]{
		create: create,
		update: update,
		seed:   seed,
		fields: jsonFields(reflect.TypeFor[In]()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open starts editing existing, or a new entity when existing is nil.
func (e *Editor[E, In]) Open(existing *E) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.existing = existing
	switch {
	case existing != nil:
		e.draft = e.seed(*existing)
	case e.defaults != nil:
		e.draft = e.defaults()
	default:
		var zero In
		e.draft = zero
	}
	e.errs = nil
	e.global = nil
	e.phase = Editing
}

// Edit changes the draft. A failed submission can be corrected and retried.
func (e *Editor[E, In]) Edit(fn func(draft *In)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Editing && e.phase != Failed {
		return zerr.With(zerr.Wrap(domain.ErrEditorNotEditing, "cannot edit"), "phase", e.phase.String())
	}
	fn(&e.draft)
	e.phase = Editing
	return nil
}

// Submit sends the draft through the create or update function.
// On success the editor closes; on failure it stays open with the field
// errors the server reported for known draft fields, and the error is returned.
func (e *Editor[E, In]) Submit(ctx context.Context) error {
	e.mu.Lock()
	if e.phase != Editing && e.phase != Failed {
		phase := e.phase
		e.mu.Unlock()
		return zerr.With(zerr.Wrap(domain.ErrEditorNotEditing, "cannot submit"), "phase", phase.String())
	}
	e.phase = Submitting
	e.errs = nil
	e.global = nil
	existing, draft := e.existing, e.draft
	e.mu.Unlock()

	var err error
	if existing != nil {
		err = e.update(ctx, *existing, draft)
	} else {
		err = e.create(ctx, draft)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.phase = Failed
		e.global = err
		e.errs = e.fieldErrors(err)
		return err
	}
	e.phase = Succeeded
	e.existing = nil
	return nil
}

// Close abandons the draft.
func (e *Editor[E, In]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.phase = Viewing
	e.existing = nil
	e.errs = nil
	e.global = nil
}

// Phase returns the current phase.
func (e *Editor[E, In]) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// IsOpen reports whether the form is shown.
func (e *Editor[E, In]) IsOpen() bool {
	switch e.Phase() {
	case Editing, Submitting, Failed:
		return true
	default:
		return false
	}
}

// IsNew reports whether the draft creates a new entity.
func (e *Editor[E, In]) IsNew() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.existing == nil
}

// Draft returns a copy of the draft.
func (e *Editor[E, In]) Draft() In {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// FieldError returns the server message for field, if any.
func (e *Editor[E, In]) FieldError(field string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs[field]
}

// Errors returns every field error keyed by field name.
func (e *Editor[E, In]) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]string, len(e.errs))
	for k, v := range e.errs {
		out[k] = v
	}
	return out
}

// GlobalError returns the error of the last failed submission.
func (e *Editor[E, In]) GlobalError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.global
}

// fieldErrors keeps the validation problems that name a draft field.
// The rest are left to the mutation's notification.
func (e *Editor[E, In]) fieldErrors(err error) map[string]string {
	apiErr, ok := domain.AsAPIError(err)
	if !ok || !apiErr.IsValidation() {
		return nil
	}
	out := make(map[string]string, len(apiErr.Fields))
	for _, f := range apiErr.Fields {
		if _, known := e.fields[f.Field]; !known {
			continue
		}
		if _, seen := out[f.Field]; !seen {
			out[f.Field] = f.Message
		}
	}
	return out
}

// jsonFields lists the JSON names of the top-level fields of t.
func jsonFields(t reflect.Type) map[string]struct{} {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]struct{}{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out[name] = struct{}{}
	}
	return out
}
