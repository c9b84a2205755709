package comment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/models"
	"github.com/markgregr/taskflow_REST_server/internal/storage"
)

type recordingPusher struct {
	pushes []string
}

func (p *recordingPusher) Push(_ context.Context, deviceToken, title, _ string) error {
	p.pushes = append(p.pushes, deviceToken+"|"+title)
	return nil
}

func newTestService(t *testing.T) (*Service, *storage.Storage, *recordingPusher) {
	t.Helper()

	store, err := storage.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	pusher := &recordingPusher{}
	return New(log, store, pusher), store, pusher
}

func newTestFixture(t *testing.T, store *storage.Storage) (*models.User, *models.Task) {
	t.Helper()

	device := "owner-device"
	owner := &models.User{
		FullName:          "Task Owner",
		Email:             "owner@example.com",
		Password:          "irrelevant",
		PushToken:         &device,
		BlacklistedTokens: models.TokenList{},
	}
	if err := store.CreateUser(owner); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	task := &models.Task{
		Title:     "Discussed task",
		DueDate:   time.Now().Add(24 * time.Hour),
		Priority:  models.TaskPriorityMedium,
		Status:    models.TaskStatusTodo,
		Category:  models.TaskCategoryWork,
		UserID:    &owner.ID,
		CreatedBy: &owner.ID,
	}
	if err := store.CreateTask(task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return owner, task
}

func TestAddComment(t *testing.T) {
	svc, store, pusher := newTestService(t)
	ctx := context.Background()
	owner, task := newTestFixture(t, store)

	added, err := svc.Add(ctx, owner.ID, task.ID, "first!")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == "" || added.TaskID != task.ID {
		t.Errorf("comment not linked to task: %+v", added)
	}
	if added.UserID == nil || *added.UserID != owner.ID {
		t.Error("author not stamped")
	}
	if len(pusher.pushes) != 1 || pusher.pushes[0] != "owner-device|New Comment!" {
		t.Errorf("owner not notified: %v", pusher.pushes)
	}

	if _, err := svc.Add(ctx, owner.ID, "missing-task", "hello"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("missing task: got %v, want ErrTaskNotFound", err)
	}
}

func TestAddCommentToDeletedTask(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	owner, task := newTestFixture(t, store)

	now := time.Now()
	task.IsDeleted = true
	task.DeletedAt = &now
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	if _, err := svc.Add(ctx, owner.ID, task.ID, "too late"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("deleted task: got %v, want ErrTaskNotFound", err)
	}
}

func TestListCommentsOrdering(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	owner, task := newTestFixture(t, store)

	first, err := svc.Add(ctx, owner.ID, task.ID, "first")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := svc.Add(ctx, owner.ID, task.ID, "second")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Force distinct timestamps regardless of clock resolution.
	earlier := first.CreatedAt.Add(-time.Minute)
	first.CreatedAt = earlier
	if err := store.SaveComment(first); err != nil {
		t.Fatalf("SaveComment: %v", err)
	}

	newest, err := svc.List(ctx, task.ID, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(newest) != 2 || newest[0].ID != second.ID {
		t.Errorf("default order should be newest first: %+v", ids(newest))
	}

	oldest, err := svc.List(ctx, task.ID, "older")
	if err != nil {
		t.Fatalf("List older: %v", err)
	}
	if len(oldest) != 2 || oldest[0].ID != first.ID {
		t.Errorf("older order should be ascending: %+v", ids(oldest))
	}

	if _, err := svc.List(ctx, "missing-task", ""); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("missing task: got %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateComment(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	owner, task := newTestFixture(t, store)

	added, err := svc.Add(ctx, owner.ID, task.ID, "draft")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, modified, err := svc.Update(ctx, owner.ID, added.ID, task.ID, "final")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !modified || updated.Content != "final" {
		t.Errorf("content not applied: modified=%v content=%q", modified, updated.Content)
	}

	_, modified, err = svc.Update(ctx, owner.ID, added.ID, task.ID, "final")
	if err != nil {
		t.Fatalf("idempotent Update: %v", err)
	}
	if modified {
		t.Error("identical content should report not modified")
	}

	if _, _, err := svc.Update(ctx, owner.ID, "missing", task.ID, "x"); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("missing comment: got %v, want ErrCommentNotFound", err)
	}
	if _, _, err := svc.Update(ctx, owner.ID, added.ID, "missing-task", "x"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("missing task: got %v, want ErrTaskNotFound", err)
	}
}

func TestSoftDeleteComment(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	owner, task := newTestFixture(t, store)

	added, err := svc.Add(ctx, owner.ID, task.ID, "to be removed")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.SoftDelete(ctx, owner.ID, added.ID, task.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	remaining, err := svc.List(ctx, task.ID, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("deleted comment still listed: %d", len(remaining))
	}

	if err := svc.SoftDelete(ctx, owner.ID, added.ID, task.ID); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("second delete: got %v, want ErrAlreadyDeleted", err)
	}
	if _, _, err := svc.Update(ctx, owner.ID, added.ID, task.ID, "revive"); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("update deleted comment: got %v, want ErrAlreadyDeleted", err)
	}
}

func ids(comments []models.Comment) []string {
	out := make([]string, len(comments))
	for i := range comments {
		out[i] = comments[i].ID
	}
	return out
}
