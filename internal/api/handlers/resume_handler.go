package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/services"
)

const ResumeIDHeader = "X-Resume-Id"

type ResumeHandler struct {
	svc services.ResumeService
}

func NewResumeHandler(svc services.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

// DocumentRequest carries an unsaved resume plus an optional template
// override for preview and export.
type DocumentRequest struct {
	Resume   models.Resume     `json:"resume"`
	Template models.TemplateID `json:"template"`
}

type AnalyzeRequest struct {
	Resume         models.Resume `json:"resume"`
	JobDescription string        `json:"jobDescription"`
}

type PreviewResponse struct {
	HTML     string            `json:"html"`
	Template models.TemplateID `json:"template"`
	Density  string            `json:"density"`
}

func (h *ResumeHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.Resume
	if !bindJSON(c, "ResumeHandler.Save", &req) {
		return
	}

	created := req.ID == ""
	out, err := h.svc.Save(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, out)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.ResumePatch
	if !bindJSON(c, "ResumeHandler.Update", &req) {
		return
	}

	out, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) Score(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.Score(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": out.ID, "score": out.Score})
}

func (h *ResumeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSON(c, "ResumeHandler.Analyze", &req) {
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), req.Resume, req.JobDescription)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Preview answers with the rendered document itself, or with JSON when the
// client asks for it.
func (h *ResumeHandler) Preview(c *gin.Context) {
	var req DocumentRequest
	if !bindJSON(c, "ResumeHandler.Preview", &req) {
		return
	}

	res := h.svc.Preview(req.Resume, req.Template)
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, PreviewResponse{HTML: res.HTML, Template: res.Template, Density: string(res.Density)})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(res.HTML))
}

// Export prints an unsaved document. Signed-in callers get it saved first.
func (h *ResumeHandler) Export(c *gin.Context) {
	var req DocumentRequest
	if !bindJSON(c, "ResumeHandler.Export", &req) {
		return
	}

	file, err := h.svc.ExportPDF(c.Request.Context(), optionalUserID(c), req.Resume, req.Template)
	if err != nil {
		writeError(c, err)
		return
	}
	writePDF(c, file)
}

func (h *ResumeHandler) Download(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	t := models.TemplateID(c.Query("template"))
	file, err := h.svc.ExportSaved(c.Request.Context(), userID, c.Param("id"), t)
	if err != nil {
		writeError(c, err)
		return
	}
	writePDF(c, file)
}

func writePDF(c *gin.Context, f *services.PDFFile) {
	if f.ResumeID != "" {
		c.Header(ResumeIDHeader, f.ResumeID)
	}
	c.Header("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", f.Data)
}
