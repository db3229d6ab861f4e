package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/crud"
	"github.com/jrsteele09/go-catalog-admin/navigation"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
)

// entityActions is what the action routes need from a CRUD controller,
// independent of its record and form types.
type entityActions interface {
	Kind() string
	OpenForm(s *sessions.Session)
	CloseForm(s *sessions.Session)
	BeginEdit(s *sessions.Session, id string)
	CancelEdit(s *sessions.Session, id string)
	RequestDelete(s *sessions.Session, id string)
	CancelDelete(s *sessions.Session, id string)
	ConfirmDelete(ctx context.Context, s *sessions.Session, id string) error
	submitCreate(r *http.Request, s *sessions.Session) error
	submitUpdate(r *http.Request, s *sessions.Session, id string) error
}

// entity binds a controller to the parser for its HTML form.
type entity[T crud.Record, F any] struct {
	*crud.Controller[T, F]
	parse func(r *http.Request) (F, error)
}

func (e entity[T, F]) submitCreate(r *http.Request, s *sessions.Session) error {
	form, err := e.parse(r)
	if err != nil {
		s.SetFormError(crud.NewFormKey(e.Kind()), err.Error())
		return err
	}
	return e.Create(r.Context(), s, form)
}

func (e entity[T, F]) submitUpdate(r *http.Request, s *sessions.Session, id string) error {
	form, err := e.parse(r)
	if err != nil {
		s.SetFormError(crud.RowFormKey(e.Kind(), id), err.Error())
		return err
	}
	return e.Update(r.Context(), s, id, form)
}

// entityAction resolves {entity}, enforces page access and redirects back to
// the list once the action has updated the session.
func (s *Server) entityAction(action func(r *http.Request, session *sessions.Session, e entityActions) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)
		e, ok := s.entities[r.PathValue("entity")]
		if !ok {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if _, err := navigation.Resolve(e.Kind(), session.Claims); err != nil {
			log.Warn().Err(err).Str("kind", e.Kind()).Msg("entity action refused")
			session.Notify(sessions.NoticeError, navigation.MsgAccessDenied)
			redirectSuccess(w, r, adminPath(string(navigation.PageDashboard)))
			return
		}

		if err := parseEntityForm(r); err != nil {
			session.Notify(sessions.NoticeError, "Invalid form data")
			redirectSuccess(w, r, adminPath(e.Kind()))
			return
		}
		if err := action(r, session, e); err != nil {
			log.Warn().Err(err).Str("kind", e.Kind()).Str("path", r.URL.Path).Msg("entity action failed")
		}
		redirectSuccess(w, r, returnPath(r, e.Kind()))
	}
}

// EntityNewHandler opens the create form
func (s *Server) EntityNewHandler() http.HandlerFunc {
	return s.entityAction(func(_ *http.Request, session *sessions.Session, e entityActions) error {
		e.OpenForm(session)
		return nil
	})
}

func (s *Server) EntityCancelHandler() http.HandlerFunc {
	return s.entityAction(func(_ *http.Request, session *sessions.Session, e entityActions) error {
		e.CloseForm(session)
		return nil
	})
}

// EntityCreateHandler submits the create form; failures stay inline on the form
func (s *Server) EntityCreateHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		return e.submitCreate(r, session)
	})
}

func (s *Server) RowEditHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		e.BeginEdit(session, r.PathValue("id"))
		return nil
	})
}

func (s *Server) RowCancelHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		e.CancelEdit(session, r.PathValue("id"))
		return nil
	})
}

func (s *Server) RowUpdateHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		return e.submitUpdate(r, session, r.PathValue("id"))
	})
}

// RowDeleteHandler only asks for confirmation; nothing is deleted yet
func (s *Server) RowDeleteHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		e.RequestDelete(session, r.PathValue("id"))
		return nil
	})
}

func (s *Server) RowConfirmDeleteHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		return e.ConfirmDelete(r.Context(), session, r.PathValue("id"))
	})
}

func (s *Server) RowCancelDeleteHandler() http.HandlerFunc {
	return s.entityAction(func(r *http.Request, session *sessions.Session, e entityActions) error {
		e.CancelDelete(session, r.PathValue("id"))
		return nil
	})
}
