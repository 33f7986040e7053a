// Package testutil holds helpers shared by package tests: an in-memory
// database with the production schema, row factories and command runners.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// Now is the fixed timestamp used by the factories below
var Now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := database.Open(context.Background(), database.Options{URL: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepository wraps a fresh in-memory database in a Repository
func SetupTestRepository(t *testing.T) (*database.Repository, *sql.DB) {
	t.Helper()
	db := SetupTestDB(t)
	return database.NewRepository(db), db
}

// Clock returns a time source that advances by one second on every call,
// starting at Now.
func Clock() func() time.Time {
	current := Now
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO users (name, created_at, updated_at) VALUES (?, ?, ?)", name, Now, Now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestProject inserts a project with a zero counter and returns its ID
func CreateTestProject(t *testing.T, db *sql.DB, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO projects (title, color, task_count, created_at, updated_at) VALUES (?, ?, 0, ?, ?)",
		title, models.DefaultProjectColor, Now, Now)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestTask inserts a task directly, bypassing the counter, and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, projectID int, title string, status models.Status) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		`INSERT INTO tasks (project_id, title, status, category, category_color, border_color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		projectID, title, string(status), models.DefaultCategory, models.DefaultCategoryColor,
		models.DefaultBorderColor, Now, Now)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// TaskCount reads the stored counter of a project
func TaskCount(t *testing.T, db *sql.DB, projectID int) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(),
		"SELECT task_count FROM projects WHERE id = ?", projectID).Scan(&n); err != nil {
		t.Fatalf("Failed to read task count: %v", err)
	}
	return n
}

// CountRows runs a COUNT(*) query and returns the result
func CountRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
