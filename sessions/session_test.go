package sessions_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/jrsteele09/go-catalog-admin/token"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestSession_Defaults(t *testing.T) {
	s := sessions.New("s1", testNow, time.Hour)

	require.False(t, s.Authenticated)
	require.Equal(t, sessions.TabPassword, s.LoginTab)
	require.Equal(t, sessions.OTPIdle, s.OTPLogin.Step)
	require.Equal(t, sessions.ResetRequest, s.Reset.Step)
	require.Equal(t, sessions.RowViewing, s.Row("categories", "1"))
	require.False(t, s.FormOpen("categories"))
	require.Empty(t, s.FormError("categories:new"))
}

func TestSession_RowState(t *testing.T) {
	s := sessions.New("s1", testNow, time.Hour)

	s.SetRow("products", "7", sessions.RowEditing)
	require.Equal(t, sessions.RowEditing, s.Row("products", "7"))
	require.Equal(t, sessions.RowViewing, s.Row("products", "8"))
	require.Equal(t, sessions.RowViewing, s.Row("categories", "7"))

	s.SetRow("products", "7", sessions.RowConfirmingDelete)
	require.Equal(t, sessions.RowConfirmingDelete, s.Row("products", "7"))

	s.SetRow("products", "7", sessions.RowViewing)
	require.Equal(t, sessions.RowViewing, s.Row("products", "7"))
	require.Empty(t, s.Rows["products"])
}

func TestSession_Notices(t *testing.T) {
	s := sessions.New("s1", testNow, time.Hour)
	s.Notify(sessions.NoticeSuccess, "Category created successfully!")
	s.Notify(sessions.NoticeError, "Error 500: boom")

	notices := s.TakeNotices()
	require.Len(t, notices, 2)
	require.Equal(t, sessions.NoticeSuccess, notices[0].Level)
	require.Empty(t, s.TakeNotices())
}

func TestSession_Clear(t *testing.T) {
	s := sessions.New("s1", testNow, time.Hour)
	s.Authenticated = true
	s.AccessToken = "a"
	s.RefreshToken = "r"
	s.Claims = &token.Claims{Role: token.RoleAdmin}
	s.CurrentPage = "products"
	s.SetRow("products", "1", sessions.RowEditing)
	s.SetFormOpen("products", true)
	s.Reset = sessions.ResetFlow{Step: sessions.ResetOTPSent, Identifier: "a@b.com"}

	s.Clear()

	require.Equal(t, "s1", s.ID)
	require.Equal(t, testNow.Add(time.Hour), s.ExpiresAt)
	require.False(t, s.Authenticated)
	require.Empty(t, s.AccessToken)
	require.Empty(t, s.RefreshToken)
	require.Nil(t, s.Claims)
	require.Empty(t, s.CurrentPage)
	require.Equal(t, sessions.RowViewing, s.Row("products", "1"))
	require.False(t, s.FormOpen("products"))
	require.Equal(t, sessions.ResetFlow{Step: sessions.ResetRequest}, s.Reset)
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := sessions.New("s1", testNow, time.Hour)
	s.Claims = &token.Claims{Role: token.RoleAdmin}
	s.SetRow("users", "3", sessions.RowEditing)
	s.SetFormOpen("users", true)

	c := s.Clone()
	c.Claims.Role = token.RoleCustomer
	c.SetRow("users", "3", sessions.RowViewing)
	c.SetFormOpen("users", false)

	require.Equal(t, token.RoleAdmin, s.Claims.Role)
	require.Equal(t, sessions.RowEditing, s.Row("users", "3"))
	require.True(t, s.FormOpen("users"))
}

func TestSession_Expired(t *testing.T) {
	s := sessions.New("s1", testNow, time.Hour)
	require.False(t, s.Expired(testNow.Add(59*time.Minute)))
	require.True(t, s.Expired(testNow.Add(61*time.Minute)))
}
