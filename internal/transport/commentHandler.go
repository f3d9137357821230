package transport

import (
	"net/http"
	"strconv"

	"github.com/dskendzo/eventplanner/internal/service"
	"github.com/dskendzo/eventplanner/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	var req service.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), middleware.UserID(c), eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: comment})
}

func (h *CommentHandler) GetEventComments(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	comments, err := h.commentService.GetEventComments(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: comments})
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid comment id"})
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), middleware.UserID(c), middleware.Role(c), commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: comment})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid comment id"})
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), middleware.UserID(c), middleware.Role(c), commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "comment deleted"})
}
