package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/markgregr/taskflow_REST_server/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := NewInMemory()
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedTask(t *testing.T, store *Storage, title string, due time.Time, creator string, parent *string) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:        title,
		DueDate:      due,
		Priority:     models.TaskPriorityMedium,
		Status:       models.TaskStatusTodo,
		Category:     models.TaskCategoryWork,
		ParentTaskID: parent,
		CreatedBy:    &creator,
	}
	if err := store.CreateTask(task); err != nil {
		t.Fatalf("CreateTask(%q): %v", title, err)
	}
	return task
}

func TestListTasksSortOrder(t *testing.T) {
	store := newTestStorage(t)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	seedTask(t, store, "Later", base.Add(72*time.Hour), "actor", nil)
	seedTask(t, store, "Sooner", base, "actor", nil)
	seedTask(t, store, "Between", base.Add(24*time.Hour), "actor", nil)

	tasks, err := store.ListTasks("actor", TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	// Default sort is due date ascending.
	for i, want := range []string{"Sooner", "Between", "Later"} {
		if tasks[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].Title, want)
		}
	}

	tasks, err = store.ListTasks("actor", TaskFilter{SortBy: "dueDate", Order: "desc"})
	if err != nil {
		t.Fatalf("ListTasks desc: %v", err)
	}
	if tasks[0].Title != "Later" {
		t.Errorf("descending sort: got %q first", tasks[0].Title)
	}

	tasks, err = store.ListTasks("actor", TaskFilter{SortBy: "title"})
	if err != nil {
		t.Fatalf("ListTasks by title: %v", err)
	}
	if tasks[0].Title != "Between" {
		t.Errorf("title sort: got %q first", tasks[0].Title)
	}
}

func TestListTasksNestedPreload(t *testing.T) {
	store := newTestStorage(t)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	parent := seedTask(t, store, "Parent", base, "actor", nil)
	live := seedTask(t, store, "Live child", base, "actor", &parent.ID)
	dead := seedTask(t, store, "Dead child", base, "actor", &parent.ID)
	now := time.Now()
	dead.IsDeleted = true
	dead.DeletedAt = &now
	if err := store.SaveTask(dead); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	comment := &models.Comment{Content: "note", TaskID: parent.ID}
	if err := store.CreateComment(comment); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	flat, err := store.ListTasks("actor", TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks flat: %v", err)
	}
	for _, task := range flat {
		if len(task.Subtasks) != 0 || len(task.Comments) != 0 {
			t.Error("flat listing should not preload associations")
		}
	}

	nested, err := store.ListTasks("actor", TaskFilter{Nested: true})
	if err != nil {
		t.Fatalf("ListTasks nested: %v", err)
	}
	var root *models.Task
	for i := range nested {
		if nested[i].ID == parent.ID {
			root = &nested[i]
		}
	}
	if root == nil {
		t.Fatal("parent missing from nested listing")
	}
	if len(root.Subtasks) != 1 || root.Subtasks[0].ID != live.ID {
		t.Errorf("nested subtasks: got %d, want only the live child", len(root.Subtasks))
	}
	if len(root.Comments) != 1 {
		t.Errorf("nested comments: got %d, want 1", len(root.Comments))
	}
}

func TestVisibleTaskScoping(t *testing.T) {
	store := newTestStorage(t)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mine := seedTask(t, store, "Mine", base, "actor", nil)
	other := seedTask(t, store, "Theirs", base, "other", nil)

	if _, err := store.VisibleTaskByID(mine.ID, "actor"); err != nil {
		t.Errorf("own task not visible: %v", err)
	}
	if _, err := store.VisibleTaskByID(other.ID, "actor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign task should be invisible, got %v", err)
	}

	// An assigned task moves into the assignee's scope and out of the
	// creator's.
	assignee := "assignee"
	mine.UserID = &assignee
	if err := store.SaveTask(mine); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if _, err := store.VisibleTaskByID(mine.ID, "assignee"); err != nil {
		t.Errorf("assignee lost visibility: %v", err)
	}
	if _, err := store.VisibleTaskByID(mine.ID, "actor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("creator should lose visibility after assignment, got %v", err)
	}
}
