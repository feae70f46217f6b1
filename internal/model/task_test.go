package model

import "testing"

func strPtr(s string) *string { return &s }

func TestTaskFilterMatches(t *testing.T) {
	task := Task{
		Title:       "Buy milk",
		Description: strPtr("From the Corner store"),
		Status:      "pending",
		Priority:    "high",
	}

	tests := []struct {
		name   string
		filter TaskFilter
		want   bool
	}{
		{"empty filter", TaskFilter{}, true},
		{"title match, other case", TaskFilter{Search: "MILK"}, true},
		{"description match", TaskFilter{Search: "corner"}, true},
		{"no text match", TaskFilter{Search: "bread"}, false},
		{"status match", TaskFilter{Status: "pending"}, true},
		{"status is exact", TaskFilter{Status: "Pending"}, false},
		{"priority mismatch", TaskFilter{Priority: "low"}, false},
		{"all fields", TaskFilter{Search: "buy", Status: "pending", Priority: "high"}, true},
		{"search ok but status wrong", TaskFilter{Search: "buy", Status: "done"}, false},
		{"wildcards are literal", TaskFilter{Search: "%"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(task); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskFilterMatchesNilDescription(t *testing.T) {
	task := Task{Title: "Walk dog"}
	if (TaskFilter{Search: "store"}).Matches(task) {
		t.Error("Matches() = true for nil description and non-matching title")
	}
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{ID: "id-1", Title: "old", Status: "pending", Priority: "medium", OwnerEmail: "a@x.com"}

	TaskPatch{Title: strPtr("new"), Description: strPtr("desc")}.Apply(&task)

	if task.Title != "new" {
		t.Errorf("Title = %q, want %q", task.Title, "new")
	}
	if task.Description == nil || *task.Description != "desc" {
		t.Errorf("Description = %v, want %q", task.Description, "desc")
	}
	if task.Status != "pending" || task.Priority != "medium" {
		t.Errorf("unset fields changed: status=%q priority=%q", task.Status, task.Priority)
	}
	if task.ID != "id-1" || task.OwnerEmail != "a@x.com" {
		t.Error("identity fields changed")
	}
}

func TestUserToResponseOmitsDigest(t *testing.T) {
	resp := User{Email: "a@x.com", Name: "A", PasswordHash: "$2a$secret"}.ToResponse()
	if resp.Email != "a@x.com" || resp.Name != "A" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
