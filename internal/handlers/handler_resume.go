package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

const maxResumeSize = 5 << 20 // 5 MiB

var allowedResumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// uploadResume godoc
// @Summary Upload a client resume
// @Description Stores a resume file (pdf, doc or docx, up to 5 MiB) for an enrolled client, replacing any previous one.
// @Tags enrolled-clients
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param file formData file true "Resume file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /enrolled-clients/{id}/resume [post]
func (h *enrollmentHandler) uploadResume(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A resume file is required"})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Resume file exceeds the 5 MiB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedResumeTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Resume must be a pdf, doc or docx file"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded resume", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxResumeSize+1))
	if err != nil {
		logger.Error("Failed to read uploaded resume", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}
	if len(data) > maxResumeSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Resume file exceeds the 5 MiB limit"})
		return
	}

	userID, authed := middleware.GetUserIDFromContext(c)
	if !authed {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file := domain.ResumeFile{
		FileName:    filepath.Base(fileHeader.Filename),
		ContentType: contentType,
		Data:        data,
	}
	if err := h.enrollmentSvc.UploadResume(c.Request.Context(), c.Param("id"), file, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileName": file.FileName})
}

// getResume godoc
// @Summary Download a client resume
// @Tags enrolled-clients
// @Produce application/octet-stream
// @Param id path string true "Enrolled Client ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /enrolled-clients/{id}/resume [get]
func (h *enrollmentHandler) getResume(c *gin.Context) {
	file, err := h.enrollmentSvc.GetResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
