package converters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/thenoetrevino/flowboard/internal/models"
)

var ts = time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)

// ============================================================================
// TEST CASES - wire field names
// ============================================================================

func TestTaskToWire_SnakeCaseFields(t *testing.T) {
	t.Parallel()

	task := &models.Task{
		ID:              3,
		ProjectID:       1,
		Title:           "Write copy",
		Status:          models.StatusInProgress,
		Category:        models.DefaultCategory,
		CategoryColor:   models.DefaultCategoryColor,
		BorderColor:     models.DefaultBorderColor,
		AssigneeDetails: []*models.User{{ID: 7, Name: "Ana", CreatedAt: ts, UpdatedAt: ts}},
		Assignees:       []int{7},
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}

	raw, err := json.Marshal(TaskToWire(task))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"project_id", "category_color", "border_color", "assignee_details", "created_at", "updated_at"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing wire field %q in %s", key, raw)
		}
	}
	if fields["description"] != nil {
		t.Errorf("empty description should be null, got %v", fields["description"])
	}
	if fields["status"] != "in-progress" {
		t.Errorf("unexpected status %v", fields["status"])
	}
}

func TestGroupedToWire_KeysAndEmptyGroups(t *testing.T) {
	t.Parallel()

	g := models.NewGroupedTasks()
	g.Add(&models.Task{ID: 1, Status: models.StatusInProgress})

	raw, err := json.Marshal(GroupedToWire(g))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var groups map[string][]any
	if err := json.Unmarshal(raw, &groups); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(groups["in-progress"]) != 1 {
		t.Errorf("expected one in-progress task, got %s", raw)
	}
	if groups["todo"] == nil || groups["completed"] == nil {
		t.Errorf("empty groups should encode as [], got %s", raw)
	}
	task := groups["in-progress"][0].(map[string]any)
	if assignees, ok := task["assignees"].([]any); !ok || len(assignees) != 0 {
		t.Errorf("nil assignees should encode as [], got %v", task["assignees"])
	}
}

// ============================================================================
// TEST CASES - conversion back to models
// ============================================================================

func TestProjectFromWire(t *testing.T) {
	t.Parallel()

	desc := "Q3 launch"
	p := ProjectFromWire(Project{
		ID:          2,
		Title:       "Launch",
		Description: &desc,
		Color:       "bg-warning",
		TaskCount:   4,
		Members:     []User{{ID: 1, Name: "Ana"}},
		CreatedAt:   ts,
	})

	if p.Description != "Q3 launch" || p.TaskCount != 4 || len(p.Members) != 1 || p.Members[0].Name != "Ana" {
		t.Errorf("unexpected project %+v", p)
	}

	empty := ProjectFromWire(Project{ID: 3})
	if empty.Description != "" || empty.Members == nil {
		t.Errorf("nil wire fields should become zero values, got %+v", empty)
	}
}

func TestGroupedFromWire_PlacesByGroup(t *testing.T) {
	t.Parallel()

	g := GroupedFromWire(TaskGroups{
		Todo:      []Task{{ID: 1, Status: "todo"}},
		Completed: []Task{{ID: 2, Status: "completed", Assignees: []int{5}}},
	})

	if len(g.Todo) != 1 || len(g.Completed) != 1 || len(g.InProgress) != 0 {
		t.Fatalf("unexpected grouping %+v", g)
	}
	if g.InProgress == nil {
		t.Error("empty group should be non-nil")
	}
	if g.Completed[0].Assignees[0] != 5 {
		t.Errorf("assignees not carried over: %+v", g.Completed[0])
	}
}
