package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/kingbet/backend/config"
	"github.com/kingbet/backend/db"
	mw "github.com/kingbet/backend/middleware"
	"github.com/kingbet/backend/session"
	"github.com/kingbet/backend/store"
)

const testPIN = "424242"

func newTestApp(t *testing.T) (*echo.Echo, *session.Store, *store.Store) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and private to the test.
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })
	require.NoError(t, db.CreateTables(context.Background(), bdb))

	st := store.New(bdb)
	sessions := session.NewStore(time.Hour)
	t.Cleanup(sessions.Stop)

	cfg := &config.Config{
		AdminPIN:   testPIN,
		SessionTTL: time.Hour,
	}

	e := echo.New()
	New(st, sessions, cfg).Register(e)
	return e, sessions, st
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// adminCookie forges an admin session directly, bypassing the login route.
func adminCookie(sessions *session.Store) *http.Cookie {
	return &http.Cookie{Name: mw.CookieName, Value: sessions.Create(true)}
}

// login goes through the real login endpoint and returns the session cookie.
func login(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/admin/login", `{"pin":"`+testPIN+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == mw.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}
