package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"itinera/internal/export"
	"itinera/internal/service"
)

// ParseHandler exposes the document parsing endpoints.
type ParseHandler struct {
	jobSvc service.ParseJobService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(jobSvc service.ParseJobService) *ParseHandler {
	return &ParseHandler{jobSvc: jobSvc}
}

type triggerRequest struct {
	UserID      string `json:"userId" binding:"required"`
	DriveFileID string `json:"driveFileId" binding:"required"`
	FileContent string `json:"fileContent" binding:"required"`
	ModelID     string `json:"modelId"`
}

type triggerResponse struct {
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
	ModelID string `json:"modelId"`
}

// Trigger submits a document for parsing. The file content arrives as a
// base64 payload; the job is accepted and either queued or, when the queue
// is disabled, parsed before the response is written.
func (h *ParseHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_USER_ID", "userId must be a UUID")
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE_CONTENT", "fileContent must be base64-encoded")
		return
	}

	job, err := h.jobSvc.Trigger(c.Request.Context(), &service.TriggerInput{
		UserID:      userID,
		DriveFileID: req.DriveFileID,
		FileContent: content,
		ModelID:     req.ModelID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, triggerResponse{
		JobID:   job.ID.String(),
		Status:  string(job.Status),
		ModelID: job.ModelID,
	})
}

// GetStatus returns the current state of a parse job.
func (h *ParseHandler) GetStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_JOB_ID", "jobID must be a UUID")
		return
	}

	job, err := h.jobSvc.GetStatus(c.Request.Context(), jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"jobId":     job.ID.String(),
		"status":    string(job.Status),
		"attempts":  job.Attempts,
		"error":     job.Error,
		"createdAt": job.CreatedAt,
		"updatedAt": job.UpdatedAt,
	})
}

// ListActive returns the user's pending and running parse jobs.
func (h *ParseHandler) ListActive(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_USER_ID", "userId must be a UUID")
		return
	}

	jobs, err := h.jobSvc.ListActive(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, jobs)
}

// ListResults returns the user's parsed documents, paginated.
func (h *ParseHandler) ListResults(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_USER_ID", "userId must be a UUID")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	docs, total, err := h.jobSvc.ListResults(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetResult returns the parsed document for a drive file.
func (h *ParseHandler) GetResult(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_USER_ID", "userId must be a UUID")
		return
	}

	doc, err := h.jobSvc.GetResult(c.Request.Context(), userID, c.Param("driveFileID"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Export streams the user's parsed documents as an xlsx workbook.
func (h *ParseHandler) Export(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_USER_ID", "userId must be a UUID")
		return
	}

	docs, _, err := h.jobSvc.ListResults(c.Request.Context(), userID, 0, 1000)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := export.WriteXLSX(docs)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("parsed-documents-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
