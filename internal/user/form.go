package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrFormClosed   = errors.New("form is not open")
	ErrUnknownField = errors.New("unknown field")
)

// Mutator is the part of the record client the form needs.
type Mutator interface {
	Create(ctx context.Context, draft Draft) *User
	Update(ctx context.Context, id string, draft Draft) *User
}

// Outcome tells the caller what a submit did.
type Outcome int

const (
	// OutcomeUnchanged means no network call was made.
	OutcomeUnchanged Outcome = iota
	OutcomeCreated
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	}
	return "unchanged"
}

// ValidationError lists the fields that failed the browser-level checks.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range Fields {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, string(f)+": "+msg)
		}
	}
	return "invalid draft: " + strings.Join(parts, ", ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate applies the checks a browser form would: name is required, email
// must look like an address, age must be numeric. Empty optional fields pass.
// Gender is free text since stores disagree on its casing.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[Field]string, len(verrs))}
	for _, fe := range verrs {
		field := Field(strings.ToLower(fe.Field()))
		out.Fields[field] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "numeric":
		return "must be a number"
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// Form is the create/edit modal: closed, then open with a draft copied from
// the target (or empty), then submitted.
type Form struct {
	open     bool
	original *User
	draft    Draft
	dirty    bool
}

func NewForm() *Form {
	return &Form{}
}

// Open starts editing target, or creating a new record when target is nil.
func (f *Form) Open(target *User) {
	f.open = true
	f.dirty = false
	f.draft = DraftFrom(target)
	if target != nil {
		original := *target
		f.original = &original
	} else {
		f.original = nil
	}
}

func (f *Form) IsOpen() bool { return f.open }

func (f *Form) IsDirty() bool { return f.dirty }

// Editing reports whether the form targets an existing record.
func (f *Form) Editing() bool { return f.original != nil }

func (f *Form) Draft() Draft { return f.draft }

func (f *Form) Original() *User { return f.original }

// Set changes one draft field and marks the draft dirty, even when the new
// value equals the old one.
func (f *Form) Set(field Field, value string) error {
	if !f.open {
		return ErrFormClosed
	}
	if !f.draft.set(field, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f.dirty = true
	return nil
}

// Close discards the draft.
func (f *Form) Close() {
	f.open = false
	f.dirty = false
	f.original = nil
	f.draft = Draft{}
}

// Submit performs at most one network call, asks the caller to refresh and
// closes the form. An untouched draft closes without touching the store at
// all, refresh included. An edit only calls Update when some field differs
// from the original, and then sends the whole draft. A create always sends
// the whole draft.
//
// A draft that fails Validate keeps the form open and nothing is sent.
func (f *Form) Submit(ctx context.Context, store Mutator, refresh func(context.Context)) (Outcome, error) {
	if !f.open {
		return OutcomeUnchanged, ErrFormClosed
	}
	if !f.dirty {
		f.Close()
		return OutcomeUnchanged, nil
	}

	if err := f.draft.Validate(); err != nil {
		return OutcomeUnchanged, err
	}

	outcome := OutcomeUnchanged
	switch {
	case f.original != nil:
		if f.draft.Differs(f.original) {
			store.Update(ctx, f.original.ID, f.draft)
			outcome = OutcomeUpdated
		}
	default:
		store.Create(ctx, f.draft)
		outcome = OutcomeCreated
	}

	if refresh != nil {
		refresh(ctx)
	}
	f.Close()
	return outcome, nil
}
