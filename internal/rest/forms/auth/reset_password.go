package auth

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordForm struct {
	Email       string
	Token       string
	NewPassword string
}

func NewResetPasswordForm() *ResetPasswordForm {
	return &ResetPasswordForm{}
}

func (f *ResetPasswordForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *ResetPasswordRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetEmail(request, errors)
	f.validateAndSetToken(request, errors)
	f.validateAndSetNewPassword(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *ResetPasswordForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"email": f.Email,
	}
}

func (f *ResetPasswordForm) validateAndSetEmail(request *ResetPasswordRequest, errors map[string]response.ErrorMessage) {
	if request.Email == "" {
		errors["email"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if !validEmail(request.Email) {
		errors["email"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "invalid email address",
		}
		return
	}

	f.Email = request.Email
}

func (f *ResetPasswordForm) validateAndSetToken(request *ResetPasswordRequest, errors map[string]response.ErrorMessage) {
	if request.Token == "" {
		errors["token"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}

	f.Token = request.Token
}

func (f *ResetPasswordForm) validateAndSetNewPassword(request *ResetPasswordRequest, errors map[string]response.ErrorMessage) {
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
