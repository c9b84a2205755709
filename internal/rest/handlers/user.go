package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/lib/locale"
	"github.com/markgregr/taskflow_REST_server/internal/rest/apierr"
	authform "github.com/markgregr/taskflow_REST_server/internal/rest/forms/auth"
	"github.com/markgregr/taskflow_REST_server/internal/rest/middleware"
	"github.com/markgregr/taskflow_REST_server/internal/rest/models"
	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type User struct {
	log         *logrus.Entry
	authService *auth.Service
}

func NewUserHandler(authService *auth.Service, log *logrus.Logger) *User {
	return &User{
		log:         logrus.NewEntry(log),
		authService: authService,
	}
}

func (h *User) EnrichRoutes(router *gin.Engine) {
	userRoutes := router.Group("/user")
	userRoutes.POST("/signup", h.signupAction)
	userRoutes.POST("/login", h.loginAction)
	userRoutes.POST("/forgot-password", h.forgotPasswordAction)
	userRoutes.POST("/reset-password", h.resetPasswordAction)

	guarded := userRoutes.Group("")
	guarded.Use(middleware.Authenticate(h.authService))
	guarded.POST("/logout", h.logoutAction)
	guarded.POST("/change-password", h.changePasswordAction)
	guarded.PUT("/update", h.updateProfileAction)
	guarded.DELETE("/delete", h.deleteAccountAction)
}

func (h *User) signupAction(c *gin.Context) {
	const op = "handlers.User.signupAction"
	log := h.log.WithField("operation", op)
	log.Info("signup")

	form, verr := authform.NewSignupForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(),
		form.(*authform.SignupForm).FullName,
		form.(*authform.SignupForm).Email,
		form.(*authform.SignupForm).Password,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to sign up", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": locale.T(c, "user.signup_success"),
		"token":   token,
		"user":    models.UserFromModel(user),
	})
}

func (h *User) loginAction(c *gin.Context) {
	const op = "handlers.User.loginAction"
	log := h.log.WithField("operation", op)
	log.Info("login")

	form, verr := authform.NewLoginForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	token, err := h.authService.Login(c.Request.Context(),
		form.(*authform.LoginForm).Email,
		form.(*authform.LoginForm).Password,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to log in", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.login_success"),
		"token":   token,
	})
}

func (h *User) forgotPasswordAction(c *gin.Context) {
	const op = "handlers.User.forgotPasswordAction"
	log := h.log.WithField("operation", op)
	log.Info("forgot password")

	form, verr := authform.NewForgotPasswordForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	err := h.authService.ForgotPassword(c.Request.Context(), form.(*authform.ForgotPasswordForm).Email)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to issue reset token", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.reset_link_sent"),
	})
}

func (h *User) resetPasswordAction(c *gin.Context) {
	const op = "handlers.User.resetPasswordAction"
	log := h.log.WithField("operation", op)
	log.Info("reset password")

	form, verr := authform.NewResetPasswordForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(),
		form.(*authform.ResetPasswordForm).Email,
		form.(*authform.ResetPasswordForm).Token,
		form.(*authform.ResetPasswordForm).NewPassword,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to reset password", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.password_reset"),
	})
}

func (h *User) logoutAction(c *gin.Context) {
	const op = "handlers.User.logoutAction"
	log := h.log.WithField("operation", op)
	log.Info("logout")

	actor := middleware.Actor(c)

	err := h.authService.Logout(c.Request.Context(), actor.ID, middleware.Token(c))
	if err != nil {
		log.WithError(err).Errorf("%s: failed to log out", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.logout_success"),
	})
}

func (h *User) changePasswordAction(c *gin.Context) {
	const op = "handlers.User.changePasswordAction"
	log := h.log.WithField("operation", op)
	log.Info("change password")

	actor := middleware.Actor(c)

	form, verr := authform.NewChangePasswordForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), actor.ID,
		form.(*authform.ChangePasswordForm).OldPassword,
		form.(*authform.ChangePasswordForm).NewPassword,
		middleware.Token(c),
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to change password", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.password_changed"),
	})
}

func (h *User) updateProfileAction(c *gin.Context) {
	const op = "handlers.User.updateProfileAction"
	log := h.log.WithField("operation", op)
	log.Info("update profile")

	actor := middleware.Actor(c)

	form, verr := authform.NewUpdateProfileForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), actor.ID,
		form.(*authform.UpdateProfileForm).FullName,
		form.(*authform.UpdateProfileForm).PushToken,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to update profile", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.updated"),
		"user":    models.UserFromModel(user),
	})
}

func (h *User) deleteAccountAction(c *gin.Context) {
	const op = "handlers.User.deleteAccountAction"
	log := h.log.WithField("operation", op)
	log.Info("delete account")

	actor := middleware.Actor(c)

	err := h.authService.DeleteAccount(c.Request.Context(), actor.ID, middleware.Token(c))
	if err != nil {
		log.WithError(err).Errorf("%s: failed to delete account", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "user.deleted"),
	})
}
