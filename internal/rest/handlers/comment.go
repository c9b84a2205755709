package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/lib/locale"
	"github.com/markgregr/taskflow_REST_server/internal/rest/apierr"
	commentsform "github.com/markgregr/taskflow_REST_server/internal/rest/forms/comments"
	"github.com/markgregr/taskflow_REST_server/internal/rest/middleware"
	"github.com/markgregr/taskflow_REST_server/internal/rest/models"
	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/internal/services/comment"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

type Comment struct {
	log            *logrus.Entry
	commentService *comment.Service
	authService    *auth.Service
}

func NewCommentHandler(commentService *comment.Service, authService *auth.Service, log *logrus.Logger) *Comment {
	return &Comment{
		log:            logrus.NewEntry(log),
		commentService: commentService,
		authService:    authService,
	}
}

func (h *Comment) EnrichRoutes(router *gin.Engine) {
	commentRoutes := router.Group("/comment")
	commentRoutes.Use(middleware.Authenticate(h.authService))
	commentRoutes.POST("/:taskID", h.addCommentAction)
	commentRoutes.GET("/:taskID", h.listCommentsAction)
	commentRoutes.PUT("/:commentID", h.updateCommentAction)
	commentRoutes.DELETE("/:commentID", h.deleteCommentAction)
}

func (h *Comment) addCommentAction(c *gin.Context) {
	const op = "handlers.Comment.addCommentAction"
	log := h.log.WithField("operation", op)
	log.Info("add comment")

	actor := middleware.Actor(c)

	form, verr := commentsform.NewAddCommentForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	added, err := h.commentService.Add(c.Request.Context(), actor.ID, c.Param("taskID"),
		form.(*commentsform.AddCommentForm).Content)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to add comment", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": locale.T(c, "comment.added"),
		"comment": models.CommentFromModel(added),
	})
}

func (h *Comment) listCommentsAction(c *gin.Context) {
	const op = "handlers.Comment.listCommentsAction"
	log := h.log.WithField("operation", op)
	log.Info("list comments")

	comments, err := h.commentService.List(c.Request.Context(), c.Param("taskID"), c.Query("sortBy"))
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list comments", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  locale.T(c, "comment.all_comments"),
		"comments": models.CommentListFromModels(comments),
	})
}

func (h *Comment) updateCommentAction(c *gin.Context) {
	const op = "handlers.Comment.updateCommentAction"
	log := h.log.WithField("operation", op)
	log.Info("update comment")

	actor := middleware.Actor(c)

	form, verr := commentsform.NewUpdateCommentForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	updated, modified, err := h.commentService.Update(c.Request.Context(), actor.ID, c.Param("commentID"),
		form.(*commentsform.UpdateCommentForm).TaskID,
		form.(*commentsform.UpdateCommentForm).Content,
	)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to update comment", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	messageKey := "comment.updated"
	if !modified {
		messageKey = "comment.not_modified"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  locale.T(c, messageKey),
		"modified": modified,
		"comment":  models.CommentFromModel(updated),
	})
}

func (h *Comment) deleteCommentAction(c *gin.Context) {
	const op = "handlers.Comment.deleteCommentAction"
	log := h.log.WithField("operation", op)
	log.Info("delete comment")

	actor := middleware.Actor(c)

	taskID := c.Query("taskId")
	if taskID == "" {
		ve := response.NewValidationError()
		ve.SetError("taskId", response.MissedValue, "missed value")
		response.HandleError(ve, c)
		return
	}

	err := h.commentService.SoftDelete(c.Request.Context(), actor.ID, c.Param("commentID"), taskID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to delete comment", op)
		response.HandleError(apierr.Resolve(err), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": locale.T(c, "comment.deleted"),
	})
}
