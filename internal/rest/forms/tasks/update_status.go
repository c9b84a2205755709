package tasks

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTaskStatusForm carries the raw status string: the service owns the
// enum check so an out-of-enum value maps to its own error key.
type UpdateTaskStatusForm struct {
	Status string
}

func NewUpdateTaskStatusForm() *UpdateTaskStatusForm {
	return &UpdateTaskStatusForm{}
}

func (f *UpdateTaskStatusForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *UpdateTaskStatusRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetStatus(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *UpdateTaskStatusForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"status": f.Status,
	}
}

func (f *UpdateTaskStatusForm) validateAndSetStatus(request *UpdateTaskStatusRequest, errors map[string]response.ErrorMessage) {
	if request.Status == "" {
		errors["status"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	f.Status = request.Status
}
