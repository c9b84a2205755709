package auth

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordForm struct {
	Email string
}

func NewForgotPasswordForm() *ForgotPasswordForm {
	return &ForgotPasswordForm{}
}

func (f *ForgotPasswordForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *ForgotPasswordRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetEmail(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *ForgotPasswordForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"email": f.Email,
	}
}

func (f *ForgotPasswordForm) validateAndSetEmail(request *ForgotPasswordRequest, errors map[string]response.ErrorMessage) {
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
