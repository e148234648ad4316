package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/adewale-oss/timetable-api/internal/dto"
	internalmiddleware "github.com/adewale-oss/timetable-api/internal/middleware"
	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/service"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
)

type timetableServiceMock struct {
	captured    dto.GenerateTimetableRequest
	generateErr error
}

func (m *timetableServiceMock) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	m.captured = req
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &dto.GenerateTimetableResponse{TimetableID: "tt-1", Status: "DRAFT", Entries: 12}, nil
}

func (m *timetableServiceMock) GenerateAsync(req dto.GenerateTimetableRequest) (*dto.GenerateJobResponse, error) {
	return &dto.GenerateJobResponse{JobID: "job-1", Status: "QUEUED"}, nil
}

func (m *timetableServiceMock) JobStatus(jobID string) (*dto.JobStatusResponse, error) {
	return &dto.JobStatusResponse{JobID: jobID, Status: "COMPLETED"}, nil
}

func (m *timetableServiceMock) Get(ctx context.Context, id string) (*models.Timetable, error) {
	return &models.Timetable{ID: id}, nil
}

func (m *timetableServiceMock) List(ctx context.Context, query dto.TimetableQuery) ([]models.Timetable, *models.Pagination, error) {
	return nil, nil, nil
}

func (m *timetableServiceMock) Grid(ctx context.Context, timetableID string) (*dto.GridResponse, error) {
	return &dto.GridResponse{TimetableID: timetableID}, nil
}

func (m *timetableServiceMock) Stats(ctx context.Context, semester int) (*models.TimetableStats, error) {
	return &models.TimetableStats{}, nil
}

func (m *timetableServiceMock) Publish(ctx context.Context, id string) (*models.Timetable, error) {
	return &models.Timetable{ID: id, Status: models.TimetableStatusPublished, IsActive: true}, nil
}

func (m *timetableServiceMock) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *timetableServiceMock) UpdateEntry(ctx context.Context, timetableID, entryID string, req dto.UpdateEntryRequest) (*models.TimetableEntry, error) {
	return &models.TimetableEntry{ID: entryID, TimetableID: timetableID}, nil
}

type exporterMock struct{}

func (m *exporterMock) ExportCSV(ctx context.Context, timetableID string) (*service.ExportFile, error) {
	return &service.ExportFile{Filename: "timetable.csv", ContentType: "text/csv", Payload: []byte("Course\n")}, nil
}

func (m *exporterMock) ExportPDF(ctx context.Context, timetableID string) (*service.ExportFile, error) {
	return &service.ExportFile{Filename: "timetable.pdf", ContentType: "application/pdf", Payload: []byte("%PDF")}, nil
}

func validGeneratePayload() []byte {
	return []byte(`{"academicSession":"2025/2026","semester":1,"seed":42}`)
}

func TestTimetableGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	handler := &TimetableHandler{service: mockSvc, exporter: &exporterMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "2025/2026", mockSvc.captured.AcademicSession)
	require.Equal(t, int64(42), mockSvc.captured.Seed)
}

func TestTimetableGenerateMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader([]byte(`{"semester":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableGenerateInfeasible(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{generateErr: appErrors.ErrNoFeasibleSchedule}
	handler := &TimetableHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "NO_FEASIBLE_SCHEDULE")
}

func TestTimetableGenerateRequiresAdminRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: models.RoleViewer})
		c.Next()
	})
	router.POST("/timetables/generate", internalmiddleware.RequireRoles(models.RoleAdmin), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTimetableGenerateUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}}
	router := gin.New()
	router.POST("/timetables/generate", internalmiddleware.RequireRoles(models.RoleAdmin), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimetableExportRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}, exporter: &exporterMock{}}
	router := gin.New()
	router.GET("/timetables/:id/export", handler.Export)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1/export?format=xlsx", nil)

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}, exporter: &exporterMock{}}
	router := gin.New()
	router.GET("/timetables/:id/export", handler.Export)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1/export", nil)

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "timetable.csv")
}
