package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/resumecraft/internal/extract"
	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/services"
	"github.com/yoockh/resumecraft/internal/utils"
)

type AIHandler struct {
	svc services.AssistService
}

func NewAIHandler(svc services.AssistService) *AIHandler {
	return &AIHandler{svc: svc}
}

func (h *AIHandler) Summary(c *gin.Context) {
	var r models.Resume
	if !bindJSON(c, "AIHandler.Summary", &r) {
		return
	}

	summary, err := h.svc.SuggestSummary(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *AIHandler) Skills(c *gin.Context) {
	var r models.Resume
	if !bindJSON(c, "AIHandler.Skills", &r) {
		return
	}

	skills, err := h.svc.SuggestSkills(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// Parse imports an existing resume from a multipart "file" upload.
func (h *AIHandler) Parse(c *gin.Context) {
	const op = "AIHandler.Parse"

	// multipart framing needs some headroom over the file limit
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > extract.MaxUploadBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, extract.MaxUploadBytes+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read upload", err))
		return
	}

	out, err := h.svc.ParsePDF(c.Request.Context(), optionalUserID(c), fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
