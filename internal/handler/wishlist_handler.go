package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"northpole/wishhub/internal/service"
	"northpole/wishhub/pkg/response"
)

type WishlistHandler struct {
	service service.WishlistService
}

func NewWishlistHandler(svc service.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: svc}
}

type AddWishRequest struct {
	Text string `json:"text" binding:"required"`
}

type AddWishResponse struct {
	ID uint32 `json:"id"`
}

// AddWish appends a wish to the list of the user named in the path. The
// service rejects the call unless the authenticated principal is that
// same user.
func (h *WishlistHandler) AddWish(c *gin.Context) {
	user := c.Param("user")

	var req AddWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	id, err := h.service.AddWish(c.Request.Context(), user, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, AddWishResponse{ID: id})
}

// GetList returns a user's wishes. Public, no authentication.
func (h *WishlistHandler) GetList(c *gin.Context) {
	wishes, err := h.service.GetList(c.Request.Context(), c.Param("user"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, wishes)
}

type SetDeadlineRequest struct {
	Deadline int64 `json:"deadline" binding:"required"`
}

// SetDeadline overwrites the cutover deadline. The service enforces that
// the caller is the configured admin.
func (h *WishlistHandler) SetDeadline(c *gin.Context) {
	var req SetDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.service.SetDeadline(c.Request.Context(), req.Deadline); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkFulfilled flips a wish of the user named in the path to fulfilled.
func (h *WishlistHandler) MarkFulfilled(c *gin.Context) {
	user := c.Param("user")

	wishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid wish id")
		return
	}

	if err := h.service.MarkFulfilled(c.Request.Context(), user, uint32(wishID)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, "operation not approved by the required principal")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "user is on the naughty list")
	case errors.Is(err, service.ErrWishNotFound):
		response.NotFound(c, "wish not found")
	case errors.Is(err, service.ErrDeadlineExceeded):
		response.Conflict(c, "too late to change the list")
	default:
		response.InternalError(c, "operation failed")
	}
}
