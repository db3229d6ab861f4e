package sessions

import (
	"time"

	"github.com/jrsteele09/go-catalog-admin/token"
)

// RowState is the UI state of one entity row in a list.
type RowState string

const (
	RowViewing          RowState = "viewing"
	RowEditing          RowState = "editing"
	RowConfirmingDelete RowState = "confirming_delete"
)

type LoginTab string

const (
	TabPassword LoginTab = "password"
	TabOTP      LoginTab = "otp"
	TabForgot   LoginTab = "forgot"
)

type OTPStep string

const (
	OTPIdle      OTPStep = "idle"
	OTPRequested OTPStep = "otp_requested"
)

// OTPLogin tracks the one-time-password login flow.
type OTPLogin struct {
	Step       OTPStep `json:"step"`
	Identifier string  `json:"identifier,omitempty"`
}

type ResetStep string

const (
	ResetRequest     ResetStep = "request"
	ResetOTPSent     ResetStep = "otp_sent"
	ResetOTPVerified ResetStep = "otp_verified"
)

// ResetFlow tracks the forgot-password wizard.
type ResetFlow struct {
	Step       ResetStep `json:"step"`
	Identifier string    `json:"identifier,omitempty"`
	OTP        string    `json:"otp,omitempty"`
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message shown once on the next rendered page.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// Session is the per-operator console state. Only the session holds tokens.
type Session struct {
	ID            string        `json:"id"`
	Authenticated bool          `json:"authenticated"`
	AccessToken   string        `json:"access_token,omitempty"`
	RefreshToken  string        `json:"refresh_token,omitempty"`
	Claims        *token.Claims `json:"claims,omitempty"`

	CurrentPage string    `json:"current_page,omitempty"`
	LoginTab    LoginTab  `json:"login_tab,omitempty"`
	OTPLogin    OTPLogin  `json:"otp_login"`
	Reset       ResetFlow `json:"reset"`

	Rows       map[string]map[string]RowState `json:"rows,omitempty"`        // entity kind -> id -> state
	Forms      map[string]bool                `json:"forms,omitempty"`       // entity kind -> create form open
	FormErrors map[string]string              `json:"form_errors,omitempty"` // form key -> inline error
	Notices    []Notice                       `json:"notices,omitempty"`

	ShowLogoutMessage bool `json:"show_logout_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func New(id string, now time.Time, maxAge time.Duration) *Session {
	s := &Session{ID: id, CreatedAt: now, ExpiresAt: now.Add(maxAge)}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.Authenticated = false
	s.AccessToken = ""
	s.RefreshToken = ""
	s.Claims = nil
	s.CurrentPage = ""
	s.LoginTab = TabPassword
	s.OTPLogin = OTPLogin{Step: OTPIdle}
	s.Reset = ResetFlow{Step: ResetRequest}
	s.Rows = nil
	s.Forms = nil
	s.FormErrors = nil
	s.Notices = nil
	s.ShowLogoutMessage = false
}

// Clear wipes all state, keeping only the session identity and lifetime.
func (s *Session) Clear() {
	s.reset()
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Row returns the state of a row, RowViewing when none was recorded.
func (s *Session) Row(kind, id string) RowState {
	if state, ok := s.Rows[kind][id]; ok {
		return state
	}
	return RowViewing
}

func (s *Session) SetRow(kind, id string, state RowState) {
	if state == RowViewing {
		delete(s.Rows[kind], id)
		return
	}
	if s.Rows == nil {
		s.Rows = make(map[string]map[string]RowState)
	}
	if s.Rows[kind] == nil {
		s.Rows[kind] = make(map[string]RowState)
	}
	s.Rows[kind][id] = state
}

func (s *Session) FormOpen(kind string) bool {
	return s.Forms[kind]
}

func (s *Session) SetFormOpen(kind string, open bool) {
	if !open {
		delete(s.Forms, kind)
		return
	}
	if s.Forms == nil {
		s.Forms = make(map[string]bool)
	}
	s.Forms[kind] = true
}

func (s *Session) FormError(key string) string {
	return s.FormErrors[key]
}

func (s *Session) SetFormError(key, msg string) {
	if msg == "" {
		delete(s.FormErrors, key)
		return
	}
	if s.FormErrors == nil {
		s.FormErrors = make(map[string]string)
	}
	s.FormErrors[key] = msg
}

func (s *Session) Notify(level NoticeLevel, text string) {
	s.Notices = append(s.Notices, Notice{Level: level, Text: text})
}

// TakeNotices returns pending notices and forgets them.
func (s *Session) TakeNotices() []Notice {
	n := s.Notices
	s.Notices = nil
	return n
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.Claims != nil {
		claims := *s.Claims
		c.Claims = &claims
	}
	if s.Rows != nil {
		c.Rows = make(map[string]map[string]RowState, len(s.Rows))
		for kind, rows := range s.Rows {
			m := make(map[string]RowState, len(rows))
			for id, state := range rows {
				m[id] = state
			}
			c.Rows[kind] = m
		}
	}
	if s.Forms != nil {
		c.Forms = make(map[string]bool, len(s.Forms))
		for k, v := range s.Forms {
			c.Forms[k] = v
		}
	}
	if s.FormErrors != nil {
		c.FormErrors = make(map[string]string, len(s.FormErrors))
		for k, v := range s.FormErrors {
			c.FormErrors[k] = v
		}
	}
	if s.Notices != nil {
		c.Notices = append([]Notice(nil), s.Notices...)
	}
	return &c
}
