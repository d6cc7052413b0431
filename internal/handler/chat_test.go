package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/statuswatch/backend/internal/model"
	"github.com/statuswatch/backend/internal/service"
)

type stubReader struct {
	recent []model.Report
}

func (s *stubReader) RecentReports(ctx context.Context, limit int32) ([]model.Report, error) {
	return s.recent, nil
}

func (s *stubReader) SearchSimilarReports(ctx context.Context, vector []float32, limit int32) ([]model.Report, error) {
	return nil, nil
}

func newChatRouter(answer string, reader *stubReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(service.NewChatService(&fakeGen{response: answer}, reader))
	r.POST("/api/v1/chat", asUser("alice", h.Ask))
	return r
}

func askChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandlerValidation(t *testing.T) {
	r := newChatRouter("", &stubReader{})

	if w := askChat(r, `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing question, got %d", w.Code)
	}
	if w := askChat(r, `{"question":"how is cpu?","source":"current"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for current source without session, got %d", w.Code)
	}
}

func TestChatHandlerAnswersWithSession(t *testing.T) {
	r := newChatRouter("CPU is at 42%, nothing to worry about.", &stubReader{})

	body := `{"question":"how is cpu?","source":"current","session":{"snapshot":{"cpu_utilization":42},"status":"NORMAL"}}`
	w := askChat(r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "success" || resp.Answer == "" || resp.ConversationID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatHandlerHistoricalWithoutReports(t *testing.T) {
	r := newChatRouter("", &stubReader{})

	w := askChat(r, `{"question":"any incidents last week?","source":"historical"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when no history exists, got %d", w.Code)
	}
}
