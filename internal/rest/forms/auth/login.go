package auth

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginForm struct {
	Email    string
	Password string
}

func NewLoginForm() *LoginForm {
	return &LoginForm{}
}

func (f *LoginForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *LoginRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetEmail(request, errors)
	f.validateAndSetPassword(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *LoginForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"email": f.Email,
	}
}

func (f *LoginForm) validateAndSetEmail(request *LoginRequest, errors map[string]response.ErrorMessage) {
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

func (f *LoginForm) validateAndSetPassword(request *LoginRequest, errors map[string]response.ErrorMessage) {
	if request.Password == "" {
		errors["password"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if len(request.Password) < 8 {
		errors["password"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at least 8 characters",
		}
		return
	}

	f.Password = request.Password
}
