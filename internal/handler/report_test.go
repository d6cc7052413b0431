package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/statuswatch/backend/internal/db"
	"github.com/statuswatch/backend/internal/model"
	"github.com/statuswatch/backend/internal/service"
)

type fakePredictor struct {
	class int
	err   error
}

func (f *fakePredictor) Predict(ctx context.Context, features []float64) (int, error) {
	return f.class, f.err
}

type fakeReportStore struct {
	reports  []db.ReportWithVote
	inserted *model.Report
	deleted  []int64
}

func (f *fakeReportStore) InsertReport(ctx context.Context, r *model.Report) (*model.Report, error) {
	stored := *r
	stored.ID = 1
	f.inserted = &stored
	return &stored, nil
}

func (f *fakeReportStore) GetReport(ctx context.Context, id int64) (*model.Report, error) {
	for _, rec := range f.reports {
		if rec.ID == id {
			report := rec.Report
			return &report, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReportStore) GetVote(ctx context.Context, username string, reportID int64) (model.VoteState, error) {
	for _, rec := range f.reports {
		if rec.ID == reportID {
			return rec.MyVote, nil
		}
	}
	return model.VoteStateNone, nil
}

func (f *fakeReportStore) ListReports(ctx context.Context, viewer string, filter model.ReportFilter) ([]db.ReportWithVote, error) {
	return f.reports, nil
}

func (f *fakeReportStore) DeleteReport(ctx context.Context, id int64) error {
	for _, r := range f.reports {
		if r.ID == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return db.ErrReportNotFound
}

type fakeGen struct {
	response string
}

func (f *fakeGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.response, nil
}

func asUser(username string, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(authUserKey, &model.AuthUser{ID: 1, Username: username})
		fn(c)
	}
}

func newReportHandler(store *fakeReportStore, predictor *fakePredictor) *ReportHandler {
	classify := service.NewClassifyService(predictor)
	reports := service.NewReportService(store, service.NewFeedbackService(&fakeGen{}))
	return NewReportHandler(classify, reports)
}

func TestClassifyHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := newReportHandler(&fakeReportStore{}, &fakePredictor{})
	r.POST("/api/v1/classify", asUser("alice", h.Classify))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestClassifyHandlerReturnsDraftReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := newReportHandler(&fakeReportStore{}, &fakePredictor{class: 2})
	r.POST("/api/v1/classify", asUser("alice", h.Classify))

	body := `{"snapshot":{"cpu_utilization":95,"memory_usage":50,"network_availability":99.9}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.ClassifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != model.StatusCritical {
		t.Fatalf("expected CRITICAL, got %s", resp.Status)
	}
	if resp.ReportText == "" {
		t.Fatal("expected a composed report")
	}
	if len(resp.Findings) == 0 {
		t.Fatal("expected threshold findings for cpu at 95")
	}
}

func TestClassifyHandlerPredictorFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := newReportHandler(&fakeReportStore{}, &fakePredictor{err: context.DeadlineExceeded})
	r.POST("/api/v1/classify", asUser("alice", h.Classify))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", bytes.NewBufferString(`{"snapshot":{"cpu_utilization":10}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestCreateReportHandlerRejectsMissingSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := newReportHandler(&fakeReportStore{}, &fakePredictor{})
	r.POST("/api/v1/reports", asUser("alice", h.Create))

	body := `{"status":"NORMAL","report_text":"text"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateReportHandlerRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := newReportHandler(&fakeReportStore{}, &fakePredictor{})
	r.POST("/api/v1/reports", asUser("alice", h.Create))

	body := `{"snapshot":{"cpu_utilization":10},"status":"DEGRADED","report_text":"text"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateReportHandlerAttributesAuthor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := &fakeReportStore{}
	h := newReportHandler(store, &fakePredictor{})
	r.POST("/api/v1/reports", asUser("alice", h.Create))

	body := `{"snapshot":{"cpu_utilization":10},"status":"NORMAL","report_text":"all quiet"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.inserted == nil || store.inserted.Username != "alice" {
		t.Fatalf("expected report attributed to alice, got %+v", store.inserted)
	}
}

func TestListReportsHandlerRejectsBadStatusFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := newReportHandler(&fakeReportStore{}, &fakePredictor{})
	r.GET("/api/v1/reports", asUser("alice", h.List))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports?status=BROKEN", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListReportsHandlerAnnotatesTrust(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := &fakeReportStore{reports: []db.ReportWithVote{
		{
			Report: model.Report{ID: 3, SystemState: model.StatusWarning, Upvotes: 2, Downvotes: 8},
			MyVote: model.VoteStateDown,
		},
	}}
	h := newReportHandler(store, &fakePredictor{})
	r.GET("/api/v1/reports", asUser("alice", h.List))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Reports []model.ReportView `json:"reports"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(resp.Reports))
	}
	view := resp.Reports[0]
	if view.TrustScore != 20 {
		t.Fatalf("expected trust score 20, got %g", view.TrustScore)
	}
	if view.TrustTier != "HIGHLY_UNTRUSTED" {
		t.Fatalf("expected HIGHLY_UNTRUSTED, got %s", view.TrustTier)
	}
	if view.MyVote != model.VoteStateDown {
		t.Fatalf("expected caller's downvote, got %q", view.MyVote)
	}
}

func TestGetReportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := &fakeReportStore{reports: []db.ReportWithVote{
		{
			Report: model.Report{ID: 5, SystemState: model.StatusWarning, Upvotes: 4, Downvotes: 6},
			MyVote: model.VoteStateUp,
		},
	}}
	h := newReportHandler(store, &fakePredictor{})
	r.GET("/api/v1/reports/:id", asUser("alice", h.Get))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/5", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view model.ReportView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.ID != 5 || view.TrustScore != 40 || view.TrustTier != "LOW_TRUST" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.MyVote != model.VoteStateUp {
		t.Fatalf("expected caller's upvote, got %q", view.MyVote)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/99", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteReportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := &fakeReportStore{reports: []db.ReportWithVote{{Report: model.Report{ID: 5}}}}
	h := newReportHandler(store, &fakePredictor{})
	r.DELETE("/api/v1/reports/:id", asUser("alice", h.Delete))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reports/5", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/reports/99", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/reports/abc", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
