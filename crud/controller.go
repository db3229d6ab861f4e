package crud

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
)

// Controller runs the list / create / edit / two-step delete cycle for one resource.
// Per-row UI state lives on the session so every request sees the same view.
type Controller[T Record, F any] struct {
	res Resource[T, F]
}

func NewController[T Record, F any](res Resource[T, F]) *Controller[T, F] {
	return &Controller[T, F]{res: res}
}

func (c *Controller[T, F]) Kind() string {
	return c.res.Kind()
}

func (c *Controller[T, F]) Label() string {
	return c.res.Label()
}

// NewFormKey is the session key of the create form's inline error.
func NewFormKey(kind string) string {
	return kind + ":new"
}

// RowFormKey is the session key of a row's inline error.
func RowFormKey(kind, id string) string {
	return kind + ":" + id
}

// DeleteConfirmation is the question shown before a delete is issued.
func DeleteConfirmation(label, name string) string {
	return fmt.Sprintf("Are you sure you want to delete %s: %s?", strings.ToLower(label), name)
}

const DeleteWarning = "This action cannot be undone."

// List fetches the whole collection and filters it locally, keeping server order.
func (c *Controller[T, F]) List(ctx context.Context, s *sessions.Session, filters ...Filter[T]) ([]T, error) {
	records, err := c.res.List(ctx, s.AccessToken)
	if err != nil {
		log.Err(err).Str("kind", c.res.Kind()).Msg("list failed")
		return nil, err
	}
	return Apply(records, filters...), nil
}

func (c *Controller[T, F]) OpenForm(s *sessions.Session) {
	s.SetFormOpen(c.res.Kind(), true)
}

func (c *Controller[T, F]) CloseForm(s *sessions.Session) {
	s.SetFormOpen(c.res.Kind(), false)
	s.SetFormError(NewFormKey(c.res.Kind()), "")
}

func (c *Controller[T, F]) BeginEdit(s *sessions.Session, id string) {
	s.SetRow(c.res.Kind(), id, sessions.RowEditing)
}

func (c *Controller[T, F]) CancelEdit(s *sessions.Session, id string) {
	s.SetRow(c.res.Kind(), id, sessions.RowViewing)
	s.SetFormError(RowFormKey(c.res.Kind(), id), "")
}

// RequestDelete asks for confirmation; nothing is sent to the backend.
func (c *Controller[T, F]) RequestDelete(s *sessions.Session, id string) {
	s.SetRow(c.res.Kind(), id, sessions.RowConfirmingDelete)
}

func (c *Controller[T, F]) CancelDelete(s *sessions.Session, id string) {
	s.SetRow(c.res.Kind(), id, sessions.RowViewing)
	s.SetFormError(RowFormKey(c.res.Kind(), id), "")
}

// Create validates and submits the create form. On failure the form stays open
// with the error recorded inline.
func (c *Controller[T, F]) Create(ctx context.Context, s *sessions.Session, form F) error {
	key := NewFormKey(c.res.Kind())
	if err := c.res.Validate(s.Claims, "", form); err != nil {
		s.SetFormError(key, err.Error())
		return err
	}
	if err := c.res.Create(ctx, s.AccessToken, form); err != nil {
		s.SetFormError(key, apiclient.Message(err))
		return err
	}

	s.SetFormOpen(c.res.Kind(), false)
	s.SetFormError(key, "")
	s.Notify(sessions.NoticeSuccess, fmt.Sprintf("%s created successfully!", c.res.Label()))
	return nil
}

// Update validates and submits an edit. On success the row returns to viewing.
func (c *Controller[T, F]) Update(ctx context.Context, s *sessions.Session, id string, form F) error {
	key := RowFormKey(c.res.Kind(), id)
	if err := c.res.Validate(s.Claims, id, form); err != nil {
		s.SetFormError(key, err.Error())
		return err
	}
	if w, ok := c.res.(Warner[F]); ok {
		for _, msg := range w.Warnings(s.Claims, id, form) {
			s.Notify(sessions.NoticeWarning, msg)
		}
	}
	if err := c.res.Update(ctx, s.AccessToken, id, form); err != nil {
		s.SetFormError(key, apiclient.Message(err))
		return err
	}

	s.SetRow(c.res.Kind(), id, sessions.RowViewing)
	s.SetFormError(key, "")
	s.Notify(sessions.NoticeSuccess, fmt.Sprintf("%s updated successfully!", c.res.Label()))
	return nil
}

// ConfirmDelete issues the delete, but only for a row already awaiting confirmation.
func (c *Controller[T, F]) ConfirmDelete(ctx context.Context, s *sessions.Session, id string) error {
	if s.Row(c.res.Kind(), id) != sessions.RowConfirmingDelete {
		return errors.Wrapf(errors.ErrDeleteNotConfirmed, "%s %s", c.res.Kind(), id)
	}
	if g, ok := c.res.(DeleteGuard); ok {
		if err := g.CheckDelete(ctx, s.Claims, s.AccessToken, id); err != nil {
			s.SetFormError(RowFormKey(c.res.Kind(), id), apiclient.Message(err))
			return err
		}
	}
	if err := c.res.Delete(ctx, s.AccessToken, id); err != nil {
		s.SetFormError(RowFormKey(c.res.Kind(), id), apiclient.Message(err))
		return err
	}

	s.SetRow(c.res.Kind(), id, sessions.RowViewing)
	s.SetFormError(RowFormKey(c.res.Kind(), id), "")
	s.Notify(sessions.NoticeSuccess, fmt.Sprintf("%s deleted successfully!", c.res.Label()))
	return nil
}
