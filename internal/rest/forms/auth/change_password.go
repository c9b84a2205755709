package auth

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordForm struct {
	OldPassword string
	NewPassword string
}

func NewChangePasswordForm() *ChangePasswordForm {
	return &ChangePasswordForm{}
}

func (f *ChangePasswordForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *ChangePasswordRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetOldPassword(request, errors)
	f.validateAndSetNewPassword(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *ChangePasswordForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{}
}

func (f *ChangePasswordForm) validateAndSetOldPassword(request *ChangePasswordRequest, errors map[string]response.ErrorMessage) {
	if request.OldPassword == "" {
		errors["oldPassword"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	f.OldPassword = request.OldPassword
}

func (f *ChangePasswordForm) validateAndSetNewPassword(request *ChangePasswordRequest, errors map[string]response.ErrorMessage) {
	if request.NewPassword == "" {
		errors["newPassword"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if msg := checkPasswordPolicy(request.NewPassword); msg != "" {
		errors["newPassword"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: msg,
		}
		return
	}

	f.NewPassword = request.NewPassword
}
