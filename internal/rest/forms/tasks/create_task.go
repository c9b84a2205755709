package tasks

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/models"
	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DueDate      string  `json:"dueDate"`
	Priority     string  `json:"priority"`
	Status       string  `json:"status"`
	Category     string  `json:"category"`
	ParentTaskID *string `json:"parentTaskId"`
}

type CreateTaskForm struct {
	Title        string
	Description  string
	DueDate      time.Time
	Priority     models.TaskPriority
	Status       models.TaskStatus
	Category     models.TaskCategory
	ParentTaskID *string
}

func NewCreateTaskForm() *CreateTaskForm {
	return &CreateTaskForm{}
}

func (f *CreateTaskForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *CreateTaskRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetTitle(request, errors)
	f.validateAndSetDescription(request, errors)
	f.validateAndSetDueDate(request, errors)
	f.validateAndSetPriority(request, errors)
	f.validateAndSetStatus(request, errors)
	f.validateAndSetCategory(request, errors)
	f.validateAndSetParentTaskID(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *CreateTaskForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":        f.Title,
		"description":  f.Description,
		"dueDate":      f.DueDate,
		"priority":     f.Priority,
		"status":       f.Status,
		"category":     f.Category,
		"parentTaskId": f.ParentTaskID,
	}
}

func (f *CreateTaskForm) validateAndSetTitle(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Title == "" {
		errors["title"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if len(request.Title) < 3 || len(request.Title) > 100 {
		errors["title"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be between 3 and 100 characters",
		}
		return
	}

	f.Title = request.Title
}

func (f *CreateTaskForm) validateAndSetDescription(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if len(request.Description) > 500 {
		errors["description"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at most 500 characters",
		}
		return
	}

	f.Description = request.Description
}

func (f *CreateTaskForm) validateAndSetDueDate(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.DueDate == "" {
		errors["dueDate"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	due, ok := parseDate(request.DueDate)
	if !ok {
		errors["dueDate"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be a date (YYYY-MM-DD or RFC3339)",
		}
		return
	}

	f.DueDate = due
}

func (f *CreateTaskForm) validateAndSetPriority(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Priority == "" {
		errors["priority"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	priority := models.TaskPriority(request.Priority)
	if !priority.Valid() {
		errors["priority"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be one of High, Medium, Low",
		}
		return
	}

	f.Priority = priority
}

func (f *CreateTaskForm) validateAndSetStatus(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Status == "" {
		return
	}
	status := models.TaskStatus(request.Status)
	if !status.Valid() {
		errors["status"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be one of todo, inprocess, inreview, testing, completed",
		}
		return
	}

	f.Status = status
}

func (f *CreateTaskForm) validateAndSetCategory(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.Category == "" {
		errors["category"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	category := models.TaskCategory(request.Category)
	if !category.Valid() {
		errors["category"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be one of Work, Personal",
		}
		return
	}

	f.Category = category
}

func (f *CreateTaskForm) validateAndSetParentTaskID(request *CreateTaskRequest, errors map[string]response.ErrorMessage) {
	if request.ParentTaskID == nil {
		return
	}
	if *request.ParentTaskID == "" {
		errors["parentTaskId"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must not be empty",
		}
		return
	}

	f.ParentTaskID = request.ParentTaskID
}

func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
