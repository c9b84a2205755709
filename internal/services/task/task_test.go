package task

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

func newTestUser(t *testing.T, store *storage.Storage, email string, pushToken *string) *models.User {
	t.Helper()

	u := &models.User{
		FullName:          "Test User",
		Email:             email,
		Password:          "irrelevant",
		PushToken:         pushToken,
		BlacklistedTokens: models.TokenList{},
	}
	if err := store.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func newInput(title string) CreateInput {
	return CreateInput{
		Title:    title,
		DueDate:  time.Now().Add(48 * time.Hour),
		Priority: models.TaskPriorityMedium,
		Category: models.TaskCategoryWork,
	}
}

func TestCreateTask(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)

	created, err := svc.Create(ctx, actor.ID, newInput("Write report"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.TaskStatusTodo {
		t.Errorf("default status: got %q, want todo", created.Status)
	}
	if created.UserID != nil {
		t.Error("new task should be unassigned")
	}
	if created.CreatedBy == nil || *created.CreatedBy != actor.ID {
		t.Error("creator not stamped")
	}

	got, err := svc.GetByID(ctx, actor.ID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Write report" {
		t.Errorf("got title %q", got.Title)
	}
}

func TestCreateTaskWithParent(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)
	stranger := newTestUser(t, store, "stranger@example.com", nil)

	parent, err := svc.Create(ctx, actor.ID, newInput("Parent"))
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}

	in := newInput("Child")
	in.ParentTaskID = &parent.ID
	child, err := svc.Create(ctx, actor.ID, in)
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}
	if child.ParentTaskID == nil || *child.ParentTaskID != parent.ID {
		t.Error("parent reference not stored")
	}

	missing := "no-such-task"
	in = newInput("Orphan")
	in.ParentTaskID = &missing
	if _, err := svc.Create(ctx, actor.ID, in); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("missing parent: got %v, want ErrParentNotFound", err)
	}

	// A parent that belongs to someone else is invisible to the actor.
	in = newInput("Foreign child")
	in.ParentTaskID = &parent.ID
	if _, err := svc.Create(ctx, stranger.ID, in); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("foreign parent: got %v, want ErrParentNotFound", err)
	}
}

func TestUpdateTask(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)

	created, err := svc.Create(ctx, actor.ID, newInput("Initial"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Renamed"
	updated, modified, err := svc.Update(ctx, actor.ID, created.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !modified {
		t.Error("expected modified outcome")
	}
	if updated.Title != "Renamed" {
		t.Errorf("title not applied: %q", updated.Title)
	}

	// Resubmitting the same values is a no-op.
	_, modified, err = svc.Update(ctx, actor.ID, created.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("idempotent Update: %v", err)
	}
	if modified {
		t.Error("identical update should report not modified")
	}

	if _, _, err := svc.Update(ctx, actor.ID, created.ID, UpdateInput{ParentTaskID: &created.ID}); !errors.Is(err, ErrSelfParent) {
		t.Errorf("self parent: got %v, want ErrSelfParent", err)
	}
	if _, _, err := svc.Update(ctx, actor.ID, "missing", UpdateInput{Title: &title}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("missing task: got %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateDeletedTask(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)

	created, err := svc.Create(ctx, actor.ID, newInput("Doomed"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.SoftDelete(ctx, actor.ID, created.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	title := "Too late"
	if _, _, err := svc.Update(ctx, actor.ID, created.ID, UpdateInput{Title: &title}); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("update deleted: got %v, want ErrAlreadyDeleted", err)
	}
	status := models.TaskStatusCompleted
	if _, _, err := svc.UpdateStatus(ctx, actor.ID, created.ID, status); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("status on deleted: got %v, want ErrAlreadyDeleted", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)

	created, err := svc.Create(ctx, actor.ID, newInput("Status walk"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, _, err := svc.UpdateStatus(ctx, actor.ID, created.ID, "done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("invalid status: got %v, want ErrInvalidStatus", err)
	}

	updated, modified, err := svc.UpdateStatus(ctx, actor.ID, created.ID, models.TaskStatusInProcess)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !modified || updated.Status != models.TaskStatusInProcess {
		t.Errorf("status not applied: modified=%v status=%q", modified, updated.Status)
	}

	_, modified, err = svc.UpdateStatus(ctx, actor.ID, created.ID, models.TaskStatusInProcess)
	if err != nil {
		t.Fatalf("idempotent UpdateStatus: %v", err)
	}
	if modified {
		t.Error("resubmitting the current status should report not modified")
	}
}

func TestAssignAndReassign(t *testing.T) {
	svc, store, pusher := newTestService(t)
	ctx := context.Background()
	creator := newTestUser(t, store, "creator@example.com", nil)
	device := "assignee-device"
	assignee := newTestUser(t, store, "assignee@example.com", &device)
	next := newTestUser(t, store, "next@example.com", nil)

	created, err := svc.Create(ctx, creator.ID, newInput("Handoff"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Assign(ctx, creator.ID, created.ID, "missing-user"); !errors.Is(err, ErrAssigneeNotFound) {
		t.Errorf("unknown assignee: got %v, want ErrAssigneeNotFound", err)
	}
	if _, err := svc.Assign(ctx, creator.ID, "missing-task", assignee.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("unknown task: got %v, want ErrTaskNotFound", err)
	}

	assigned, err := svc.Assign(ctx, creator.ID, created.ID, assignee.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.UserID == nil || *assigned.UserID != assignee.ID {
		t.Error("assignee not set")
	}
	if len(pusher.pushes) == 0 || pusher.pushes[len(pusher.pushes)-1] != device+"|Task Assignment!" {
		t.Errorf("assignee not notified: %v", pusher.pushes)
	}

	// Ownership moved: the assignee sees the task, the creator no longer does.
	if _, err := svc.GetByID(ctx, assignee.ID, created.ID); err != nil {
		t.Errorf("assignee lost visibility: %v", err)
	}
	if _, err := svc.GetByID(ctx, creator.ID, created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("creator visibility after assignment: got %v, want ErrTaskNotFound", err)
	}

	reassigned, err := svc.Reassign(ctx, assignee.ID, created.ID, next.ID)
	if err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	if reassigned.UserID == nil || *reassigned.UserID != next.ID {
		t.Error("reassignment not applied")
	}
}

func TestSoftDeleteCascades(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)

	parent, err := svc.Create(ctx, actor.ID, newInput("Root"))
	if err != nil {
		t.Fatalf("Create root: %v", err)
	}
	in := newInput("Child")
	in.ParentTaskID = &parent.ID
	child, err := svc.Create(ctx, actor.ID, in)
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}
	in = newInput("Grandchild")
	in.ParentTaskID = &child.ID
	grandchild, err := svc.Create(ctx, actor.ID, in)
	if err != nil {
		t.Fatalf("Create grandchild: %v", err)
	}

	comment := &models.Comment{Content: "note", TaskID: child.ID, UserID: &actor.ID}
	if err := store.CreateComment(comment); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := svc.SoftDelete(ctx, actor.ID, parent.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	for _, id := range []string{parent.ID, child.ID, grandchild.ID} {
		if _, err := store.TaskByID(id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("task %s still live after cascade", id)
		}
		marked, err := store.VisibleTaskByIDAny(id, actor.ID)
		if err != nil {
			t.Fatalf("VisibleTaskByIDAny(%s): %v", id, err)
		}
		if !marked.IsDeleted || marked.DeletedAt == nil || marked.DeletedBy == nil {
			t.Errorf("task %s missing soft-delete markers", id)
		}
	}

	if _, err := store.CommentByID(comment.ID, child.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Error("comment should be swept with its task")
	}

	if err := svc.SoftDelete(ctx, actor.ID, parent.ID); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("second delete: got %v, want ErrAlreadyDeleted", err)
	}
}

func TestListFiltersAndVisibility(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	actor := newTestUser(t, store, "actor@example.com", nil)
	other := newTestUser(t, store, "other@example.com", nil)

	work := newInput("Work item")
	if _, err := svc.Create(ctx, actor.ID, work); err != nil {
		t.Fatalf("Create: %v", err)
	}
	personal := newInput("Personal item")
	personal.Category = models.TaskCategoryPersonal
	personal.Priority = models.TaskPriorityHigh
	if _, err := svc.Create(ctx, actor.ID, personal); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, other.ID, newInput("Someone else's")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.List(ctx, actor.ID, storage.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("visibility leak: got %d tasks, want 2", len(all))
	}

	highOnly, err := svc.List(ctx, actor.ID, storage.TaskFilter{Priority: "High"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(highOnly) != 1 || highOnly[0].Title != "Personal item" {
		t.Errorf("priority filter failed: %+v", highOnly)
	}
}

func TestSendDueReminders(t *testing.T) {
	svc, store, pusher := newTestService(t)
	ctx := context.Background()
	device := "due-device"
	owner := newTestUser(t, store, "owner@example.com", &device)

	now := time.Now()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	due := &models.Task{
		Title:    "Due today",
		DueDate:  noon,
		Priority: models.TaskPriorityHigh,
		Status:   models.TaskStatusTodo,
		Category: models.TaskCategoryWork,
		UserID:   &owner.ID,
	}
	if err := store.CreateTask(due); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	later := &models.Task{
		Title:    "Due next week",
		DueDate:  noon.Add(7 * 24 * time.Hour),
		Priority: models.TaskPriorityLow,
		Status:   models.TaskStatusTodo,
		Category: models.TaskCategoryWork,
		UserID:   &owner.ID,
	}
	if err := store.CreateTask(later); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := svc.SendDueReminders(ctx, time.Now()); err != nil {
		t.Fatalf("SendDueReminders: %v", err)
	}
	if len(pusher.pushes) != 1 {
		t.Fatalf("expected exactly 1 reminder, got %d", len(pusher.pushes))
	}
	if pusher.pushes[0] != device+"|Task Due Reminder" {
		t.Errorf("unexpected push: %q", pusher.pushes[0])
	}
}

type failingPusher struct {
	attempts int
}

func (p *failingPusher) Push(_ context.Context, _, _, _ string) error {
	p.attempts++
	return errors.New("device unreachable")
}

// Push delivery is best effort: a broken pusher must never turn a
// successful mutation into an error.
func TestPushFailuresDoNotFailRequests(t *testing.T) {
	store, err := storage.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	pusher := &failingPusher{}
	svc := New(log, store, pusher)
	ctx := context.Background()

	ownerDevice := "dead-device"
	owner := newTestUser(t, store, "owner@example.com", &ownerDevice)
	assigneeDevice := "dead-device-too"
	assignee := newTestUser(t, store, "assignee@example.com", &assigneeDevice)

	created, err := svc.Create(ctx, owner.ID, newInput("Flaky delivery"))
	if err != nil {
		t.Fatalf("Create with failing pusher: %v", err)
	}
	if pusher.attempts != 1 {
		t.Errorf("expected 1 push attempt after create, got %d", pusher.attempts)
	}

	if _, err := svc.Assign(ctx, owner.ID, created.ID, assignee.ID); err != nil {
		t.Fatalf("Assign with failing pusher: %v", err)
	}
	if pusher.attempts != 2 {
		t.Errorf("expected 2 push attempts after assign, got %d", pusher.attempts)
	}

	_, modified, err := svc.UpdateStatus(ctx, assignee.ID, created.ID, models.TaskStatusInProcess)
	if err != nil {
		t.Fatalf("UpdateStatus with failing pusher: %v", err)
	}
	if !modified {
		t.Error("status change should still be persisted")
	}
}

type flakyPusher struct {
	failToken string
	attempts  int
	delivered []string
}

func (p *flakyPusher) Push(_ context.Context, deviceToken, title, _ string) error {
	p.attempts++
	if deviceToken == p.failToken {
		return errors.New("device unreachable")
	}
	p.delivered = append(p.delivered, deviceToken+"|"+title)
	return nil
}

func TestSendDueRemindersToleratesFailedPush(t *testing.T) {
	store, err := storage.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	pusher := &flakyPusher{failToken: "dead-device"}
	svc := New(log, store, pusher)
	ctx := context.Background()

	deadDevice := "dead-device"
	liveDevice := "live-device"
	unlucky := newTestUser(t, store, "unlucky@example.com", &deadDevice)
	lucky := newTestUser(t, store, "lucky@example.com", &liveDevice)

	now := time.Now()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	for _, task := range []*models.Task{
		{Title: "First due", DueDate: noon, Priority: models.TaskPriorityHigh,
			Status: models.TaskStatusTodo, Category: models.TaskCategoryWork, UserID: &unlucky.ID},
		{Title: "Second due", DueDate: noon, Priority: models.TaskPriorityHigh,
			Status: models.TaskStatusTodo, Category: models.TaskCategoryWork, UserID: &lucky.ID},
	} {
		if err := store.CreateTask(task); err != nil {
			t.Fatalf("CreateTask(%q): %v", task.Title, err)
		}
	}

	// One unreachable device must not abort the scan or the other delivery.
	if err := svc.SendDueReminders(ctx, time.Now()); err != nil {
		t.Fatalf("SendDueReminders: %v", err)
	}
	if pusher.attempts != 2 {
		t.Errorf("expected both reminders attempted, got %d", pusher.attempts)
	}
	if len(pusher.delivered) != 1 || pusher.delivered[0] != liveDevice+"|Task Due Reminder" {
		t.Errorf("surviving delivery wrong: %v", pusher.delivered)
	}
}
