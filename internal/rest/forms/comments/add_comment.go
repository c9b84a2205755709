package comments

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type AddCommentRequest struct {
	Content string `json:"content"`
}

type AddCommentForm struct {
	Content string
}

func NewAddCommentForm() *AddCommentForm {
	return &AddCommentForm{}
}

func (f *AddCommentForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *AddCommentRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetContent(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *AddCommentForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"content": f.Content,
	}
}

func (f *AddCommentForm) validateAndSetContent(request *AddCommentRequest, errors map[string]response.ErrorMessage) {
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
