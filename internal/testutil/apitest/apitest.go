// Package apitest starts the real HTTP API over an in-memory database for
// tests of its consumers.
package apitest

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/flowboard/internal/api"
	"github.com/thenoetrevino/flowboard/internal/app"
	"github.com/thenoetrevino/flowboard/internal/testutil"
)

// Serve starts the API and returns its base URL and the database behind it
func Serve(t *testing.T) (string, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, db := testutil.SetupTestRepository(t)
	application := app.New(repo,
		app.WithClock(testutil.Clock()),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	ts := httptest.NewServer(api.NewServer(application.APIDeps(), api.Config{}))
	t.Cleanup(ts.Close)
	return ts.URL, db
}
