package tasks

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type AssignTaskRequest struct {
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
}

type AssignTaskForm struct {
	TaskID string
	UserID string
}

func NewAssignTaskForm() *AssignTaskForm {
	return &AssignTaskForm{}
}

func (f *AssignTaskForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *AssignTaskRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetTaskID(request, errors)
	f.validateAndSetUserID(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *AssignTaskForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"taskId": f.TaskID,
		"userId": f.UserID,
	}
}

func (f *AssignTaskForm) validateAndSetTaskID(request *AssignTaskRequest, errors map[string]response.ErrorMessage) {
	if request.TaskID == "" {
		errors["taskId"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	f.TaskID = request.TaskID
}

func (f *AssignTaskForm) validateAndSetUserID(request *AssignTaskRequest, errors map[string]response.ErrorMessage) {
	if request.UserID == "" {
		errors["userId"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	f.UserID = request.UserID
}
