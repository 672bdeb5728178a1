package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/resumecraft/internal/services"
)

type FeedbackHandler struct {
	svc services.FeedbackService
}

func NewFeedbackHandler(svc services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req services.FeedbackInput
	if !bindJSON(c, "FeedbackHandler.Submit", &req) {
		return
	}

	f, err := h.svc.Submit(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}
