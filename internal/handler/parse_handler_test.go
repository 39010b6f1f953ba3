package handler_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"itinera/internal/domain"
	"itinera/internal/handler"
	"itinera/internal/service"
	"itinera/mocks"
)

func setupParseRouter() (*gin.Engine, *mocks.MockParseJobService) {
	gin.SetMode(gin.TestMode)
	jobSvc := new(mocks.MockParseJobService)
	h := handler.NewParseHandler(jobSvc)

	r := gin.New()
	r.POST("/api/v1/parser/trigger", h.Trigger)
	r.GET("/api/v1/parser/status/:jobID", h.GetStatus)
	r.GET("/api/v1/parser/active-jobs", h.ListActive)
	r.GET("/api/v1/parser/results", h.ListResults)
	r.GET("/api/v1/parser/results/:driveFileID", h.GetResult)
	return r, jobSvc
}

func TestParseHandler_Trigger_Accepted(t *testing.T) {
	r, jobSvc := setupParseRouter()

	userID := uuid.New()
	job := &domain.ParseJob{
		ID:      uuid.New(),
		UserID:  userID,
		Status:  domain.JobStatusPending,
		ModelID: "default-model",
	}
	jobSvc.On("Trigger", mock.Anything, mock.MatchedBy(func(in *service.TriggerInput) bool {
		return in.UserID == userID && in.DriveFileID == "drive-1" && string(in.FileContent) == "pdf bytes"
	})).Return(job, nil)

	body, _ := json.Marshal(map[string]string{
		"userId":      userID.String(),
		"driveFileId": "drive-1",
		"fileContent": base64.StdEncoding.EncodeToString([]byte("pdf bytes")),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parser/trigger", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, job.ID.String(), data["jobId"])
	assert.Equal(t, "pending", data["status"])
	jobSvc.AssertExpectations(t)
}

func TestParseHandler_Trigger_BadBase64(t *testing.T) {
	r, jobSvc := setupParseRouter()

	body, _ := json.Marshal(map[string]string{
		"userId":      uuid.New().String(),
		"driveFileId": "drive-1",
		"fileContent": "!!! not base64 !!!",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parser/trigger", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	jobSvc.AssertNotCalled(t, "Trigger", mock.Anything, mock.Anything)
}

func TestParseHandler_Trigger_MissingFields(t *testing.T) {
	r, _ := setupParseRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parser/trigger", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseHandler_GetStatus_NotFound(t *testing.T) {
	r, jobSvc := setupParseRouter()

	jobID := uuid.New()
	jobSvc.On("GetStatus", mock.Anything, jobID).Return(nil, domain.ErrJobNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parser/status/"+jobID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "JOB_NOT_FOUND", resp.Error.Code)
}

func TestParseHandler_GetStatus_InvalidID(t *testing.T) {
	r, _ := setupParseRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parser/status/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseHandler_ListResults_Paginated(t *testing.T) {
	r, jobSvc := setupParseRouter()

	userID := uuid.New()
	docs := []domain.ParsedDocument{
		{ID: uuid.New(), UserID: userID, DocumentType: domain.DocumentTypeHousing},
	}
	jobSvc.On("ListResults", mock.Anything, userID, 10, 25).Return(docs, 42, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/parser/results?userId="+userID.String()+"&offset=10&limit=25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Offset)
	assert.Equal(t, 25, resp.Meta.Limit)
}

func TestParseHandler_ListActive_RequiresUserID(t *testing.T) {
	r, _ := setupParseRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parser/active-jobs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseHandler_GetResult(t *testing.T) {
	r, jobSvc := setupParseRouter()

	userID := uuid.New()
	doc := &domain.ParsedDocument{
		ID:           uuid.New(),
		UserID:       userID,
		DriveFileID:  "drive-1",
		DocumentType: domain.DocumentTypeTransportation,
	}
	jobSvc.On("GetResult", mock.Anything, userID, "drive-1").Return(doc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/parser/results/drive-1?userId="+userID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
