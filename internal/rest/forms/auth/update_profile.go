package auth

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type UpdateProfileRequest struct {
	FullName  *string `json:"fullName"`
	PushToken *string `json:"pushToken"`
}

type UpdateProfileForm struct {
	FullName  *string
	PushToken *string
}

func NewUpdateProfileForm() *UpdateProfileForm {
	return &UpdateProfileForm{}
}

func (f *UpdateProfileForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *UpdateProfileRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	if request.FullName == nil && request.PushToken == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "either 'fullName' or 'pushToken' must be provided")
		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetFullName(request, errors)
	f.validateAndSetPushToken(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *UpdateProfileForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"fullName":  f.FullName,
		"pushToken": f.PushToken,
	}
}

func (f *UpdateProfileForm) validateAndSetFullName(request *UpdateProfileRequest, errors map[string]response.ErrorMessage) {
	if request.FullName == nil {
		return
	}
	if len(*request.FullName) < 2 {
		errors["fullName"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at least 2 characters",
		}
		return
	}

	f.FullName = request.FullName
}

func (f *UpdateProfileForm) validateAndSetPushToken(request *UpdateProfileRequest, errors map[string]response.ErrorMessage) {
	if request.PushToken == nil {
		return
	}
	if *request.PushToken == "" {
		errors["pushToken"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must not be empty",
		}
		return
	}

	f.PushToken = request.PushToken
}
