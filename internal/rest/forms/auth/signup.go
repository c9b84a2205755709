package auth

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/rest/forms"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupForm struct {
	FullName string
	Email    string
	Password string
}

func NewSignupForm() *SignupForm {
	return &SignupForm{}
}

func (f *SignupForm) ParseAndValidate(c *gin.Context) (forms.Former, response.Error) {
	body, err := io.ReadAll(c.Request.Body)
	defer c.Request.Body.Close()

	if err != nil {
		log.WithError(err).Error("unable to read body")
		return nil, response.NewInternalError()
	}

	var request *SignupRequest
	err = json.Unmarshal(body, &request)
	if err != nil || request == nil {
		ve := response.NewValidationError()
		ve.SetError(response.GeneralErrorKey, response.InvalidRequestStructure, "invalid request structure")

		return nil, ve
	}

	errors := make(map[string]response.ErrorMessage)
	f.validateAndSetFullName(request, errors)
	f.validateAndSetEmail(request, errors)
	f.validateAndSetPassword(request, errors)

	if len(errors) > 0 {
		return nil, response.NewValidationError(errors)
	}

	return f, nil
}

func (f *SignupForm) ConvertToMap() map[string]interface{} {
	return map[string]interface{}{
		"fullName": f.FullName,
		"email":    f.Email,
	}
}

func (f *SignupForm) validateAndSetFullName(request *SignupRequest, errors map[string]response.ErrorMessage) {
	if request.FullName == "" {
		errors["fullName"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if len(request.FullName) < 2 {
		errors["fullName"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: "must be at least 2 characters",
		}
		return
	}

	f.FullName = request.FullName
}

func (f *SignupForm) validateAndSetEmail(request *SignupRequest, errors map[string]response.ErrorMessage) {
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

func (f *SignupForm) validateAndSetPassword(request *SignupRequest, errors map[string]response.ErrorMessage) {
	if request.Password == "" {
		errors["password"] = response.ErrorMessage{
			Code:    response.MissedValue,
			Message: "missed value",
		}
		return
	}
	if msg := checkPasswordPolicy(request.Password); msg != "" {
		errors["password"] = response.ErrorMessage{
			Code:    response.InvalidValue,
			Message: msg,
		}
		return
	}

	f.Password = request.Password
}
