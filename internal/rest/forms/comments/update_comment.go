package comments

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type UpdateCommentRequest struct {
	TaskID  string `json:"taskId"`
	Content string `json:"content"`
}

type UpdateCommentForm struct {
	TaskID  string
	Content string
}

func NewUpdateCommentForm() *UpdateCommentForm {
	return &UpdateCommentForm{}
}

func (f *UpdateCommentForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *UpdateCommentRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetTaskID(request, errors)
	f.validateAndSetContent(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *UpdateCommentForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"taskId":  f.TaskID,
		"content": f.Content,
	}
}

func (f *UpdateCommentForm) validateAndSetTaskID(request *UpdateCommentRequest, errors map[string]response.ErrorMessage) {
	if request.TaskID == "" {
		errors["taskId"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	f.TaskID = request.TaskID
}

func (f *UpdateCommentForm) validateAndSetContent(request *UpdateCommentRequest, errors map[string]response.ErrorMessage) {
	if request.Content == "" {
		errors["content"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if len(request.Content) > 500 {
		errors["content"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at most 500 characters",
		}
		return
	}

	f.Content = request.Content
}
