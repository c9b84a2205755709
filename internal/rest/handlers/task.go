package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/lib/locale"
	domain "github.com/markgregr/taskflow_REST_server/internal/models"
	"github.com/markgregr/taskflow_REST_server/internal/rest/apierr"
	tasksform "github.com/markgregr/taskflow_REST_server/internal/rest/forms/tasks"
	"github.com/markgregr/taskflow_REST_server/internal/rest/middleware"
	"github.com/markgregr/taskflow_REST_server/internal/rest/models"
	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/internal/services/task"
	"github.com/markgregr/taskflow_REST_server/internal/storage"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type Task struct {
	log         *logrus.Entry
	taskService *task.Service
	authService *auth.Service
}

func NewTaskHandler(taskService *task.Service, authService *auth.Service, log *logrus.Logger) *Task {
	return &Task{
		log:         logrus.NewEntry(log),
		taskService: taskService,
		authService: authService,
	}
}

func (h *Task) EnrichRoutes(router *gin.Engine) {
	taskRoutes := router.Group("/task")
	taskRoutes.Use(middleware.Authenticate(h.authService))
	taskRoutes.POST("/", h.createTaskAction)
	taskRoutes.GET("/", h.listTasksAction)
	taskRoutes.POST("/assign", h.assignTaskAction)
	taskRoutes.PUT("/reassign", h.reassignTaskAction)
	taskRoutes.GET("/:taskID", h.getTaskAction)
	taskRoutes.PUT("/:taskID", h.updateTaskAction)
	taskRoutes.PUT("/:taskID/status", h.updateTaskStatusAction)
	taskRoutes.DELETE("/:taskID", h.deleteTaskAction)
}

func (h *Task) createTaskAction(c *gin.Context) {
	const op = "handlers.Task.createTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("create task")

	actor := middleware.Actor(c)

	form, verr := tasksform.NewCreateTaskForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	created, err := h.taskService.Create(c.Request.Context(), actor.ID, task.CreateInput{
		Title:        form.(*tasksform.CreateTaskForm).Title,
		Description:  form.(*tasksform.CreateTaskForm).Description,
		DueDate:      form.(*tasksform.CreateTaskForm).DueDate,
		Priority:     form.(*tasksform.CreateTaskForm).Priority,
		Status:       form.(*tasksform.CreateTaskForm).Status,
		Category:     form.(*tasksform.CreateTaskForm).Category,
		ParentTaskID: form.(*tasksform.CreateTaskForm).ParentTaskID,
	})
	if err != nil {
		log.WithError(err).Errorf("%s: failed to create task", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": locale.T(c, "task.created"),
		"task":    models.TaskFromModel(created),
	})
}

func (h *Task) listTasksAction(c *gin.Context) {
	const op = "handlers.Task.listTasksAction"
	log := h.log.WithField("operation", op)
	log.Info("list tasks")

	actor := middleware.Actor(c)

	filter := storage.TaskFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
		Nested:   c.Query("nested") == "true",
	}

	tasks, err := h.taskService.List(c.Request.Context(), actor.ID, filter)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list tasks", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "task.list"),
		"tasks":   models.TaskListFromModels(tasks),
	})
}

func (h *Task) getTaskAction(c *gin.Context) {
	const op = "handlers.Task.getTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("get task")

	actor := middleware.Actor(c)

	t, err := h.taskService.GetByID(c.Request.Context(), actor.ID, c.Param("taskID"))
	if err != nil {
		log.WithError(err).Errorf("%s: failed to get task", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "task.fetched"),
		"task":    models.TaskFromModel(t),
	})
}

func (h *Task) updateTaskAction(c *gin.Context) {
	const op = "handlers.Task.updateTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("update task")

	actor := middleware.Actor(c)

	form, verr := tasksform.NewUpdateTaskForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	updated, modified, err := h.taskService.Update(c.Request.Context(), actor.ID, c.Param("taskID"), task.UpdateInput{
		Title:        form.(*tasksform.UpdateTaskForm).Title,
		Description:  form.(*tasksform.UpdateTaskForm).Description,
		DueDate:      form.(*tasksform.UpdateTaskForm).DueDate,
		Priority:     form.(*tasksform.UpdateTaskForm).Priority,
		Status:       form.(*tasksform.UpdateTaskForm).Status,
		Category:     form.(*tasksform.UpdateTaskForm).Category,
		ParentTaskID: form.(*tasksform.UpdateTaskForm).ParentTaskID,
	})
	if err != nil {
		log.WithError(err).Errorf("%s: failed to update task", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	messageKey := "task.updated"
	if !modified {
		messageKey = "task.not_modified"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  locale.T(c, messageKey),
		"modified": modified,
		"task":     models.TaskFromModel(updated),
	})
}

func (h *Task) updateTaskStatusAction(c *gin.Context) {
	const op = "handlers.Task.updateTaskStatusAction"
	log := h.log.WithField("operation", op)
	log.Info("update task status")

	actor := middleware.Actor(c)

	form, verr := tasksform.NewUpdateTaskStatusForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	updated, modified, err := h.taskService.UpdateStatus(c.Request.Context(), actor.ID, c.Param("taskID"),
		domain.TaskStatus(form.(*tasksform.UpdateTaskStatusForm).Status))
	if err != nil {
		log.WithError(err).Errorf("%s: failed to update task status", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	messageKey := "task.status_updated"
	if !modified {
		messageKey = "task.not_modified"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  locale.T(c, messageKey),
		"modified": modified,
		"task":     models.TaskFromModel(updated),
	})
}

func (h *Task) deleteTaskAction(c *gin.Context) {
	const op = "handlers.Task.deleteTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("delete task")

	actor := middleware.Actor(c)

	err := h.taskService.SoftDelete(c.Request.Context(), actor.ID, c.Param("taskID"))
	if err != nil {
		log.WithError(err).Errorf("%s: failed to delete task", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "task.deleted"),
	})
}

func (h *Task) assignTaskAction(c *gin.Context) {
	const op = "handlers.Task.assignTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("assign task")

	actor := middleware.Actor(c)

	form, verr := tasksform.NewAssignTaskForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	assigned, err := h.taskService.Assign(c.Request.Context(), actor.ID,
		form.(*tasksform.AssignTaskForm).TaskID,
		form.(*tasksform.AssignTaskForm).UserID,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to assign task", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "task.assigned"),
		"task":    models.TaskFromModel(assigned),
	})
}

func (h *Task) reassignTaskAction(c *gin.Context) {
	const op = "handlers.Task.reassignTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("reassign task")

	actor := middleware.Actor(c)

	form, verr := tasksform.NewReassignTaskForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	reassigned, err := h.taskService.Reassign(c.Request.Context(), actor.ID,
		form.(*tasksform.ReassignTaskForm).TaskID,
		form.(*tasksform.ReassignTaskForm).UserID,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to reassign task", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "task.reassigned"),
		"task":    models.TaskFromModel(reassigned),
	})
}
