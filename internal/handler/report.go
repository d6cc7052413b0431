package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statuswatch/backend/internal/model"
	"github.com/statuswatch/backend/internal/service"
)

type ReportHandler struct {
	classify *service.ClassifyService
	reports  *service.ReportService
}

func NewReportHandler(classify *service.ClassifyService, reports *service.ReportService) *ReportHandler {
	return &ReportHandler{classify: classify, reports: reports}
}

// Classify godoc
// @Summary Classify a metric snapshot
// @Description Runs the external status model over the snapshot and returns the predicted state with a composed draft report. Nothing is persisted.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ClassifyRequest true "Metric snapshot"
// @Success 200 {object} model.ClassifyResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/classify [post]
func (h *ReportHandler) Classify(c *gin.Context) {
	var req model.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	snap := *req.Snapshot
	status, err := h.classify.Classify(c.Request.Context(), snap)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "classification failed"})
		return
	}

	c.JSON(http.StatusOK, model.ClassifyResponse{
		Status:     status,
		Snapshot:   snap,
		ReportText: service.ComposeReport(snap, status, time.Now()),
		Findings:   service.EvaluateThresholds(snap),
	})
}

// Create godoc
// @Summary Save a status report
// @Description Persists a classified report. Operator feedback, when present, is summarized and drives the issue status.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SaveReportRequest true "Report to save"
// @Success 200 {object} model.SaveReportResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	report, err := h.reports.Save(c.Request.Context(), user.Username, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
		return
	}

	c.JSON(http.StatusOK, model.SaveReportResponse{
		Status: "saved",
		Report: report,
	})
}

// List godoc
// @Summary List stored reports
// @Description Reports ordered newest first, annotated with trust data and the caller's own vote. Filters: search (substring over report text), status and issue_status (comma-separated).
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match over report text and author"
// @Param status query string false "Comma-separated system states (NORMAL, WARNING, CRITICAL)"
// @Param issue_status query string false "Comma-separated issue statuses (RESOLVED, UNRESOLVED)"
// @Success 200 {object} map[string][]model.ReportView
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, err := h.reports.List(c.Request.Context(), user.Username, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": views})
}

// Get godoc
// @Summary Get a report
// @Description One report annotated with trust data and the caller's own vote.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.ReportView
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	view, err := h.reports.Get(c.Request.Context(), user.Username, id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete godoc
// @Summary Delete a report
// @Description Deletes a report together with its votes and embedding.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.DeleteReportResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report"})
		return
	}

	c.JSON(http.StatusOK, model.DeleteReportResponse{Status: "deleted"})
}

func parseReportFilter(c *gin.Context) (model.ReportFilter, error) {
	filter := model.ReportFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}

	for _, raw := range strings.Split(c.Query("status"), ",") {
		value := model.SystemStatus(strings.ToUpper(strings.TrimSpace(raw)))
		if value == "" {
			continue
		}
		if !model.ValidSystemStatus(value) {
			return model.ReportFilter{}, errors.New("invalid status filter")
		}
		filter.SystemStates = append(filter.SystemStates, value)
	}

	for _, raw := range strings.Split(c.Query("issue_status"), ",") {
		value := model.IssueStatus(strings.ToUpper(strings.TrimSpace(raw)))
		if value == "" {
			continue
		}
		if value != model.IssueResolved && value != model.IssueUnresolved {
			return model.ReportFilter{}, errors.New("invalid issue_status filter")
		}
		filter.IssueStatuses = append(filter.IssueStatuses, value)
	}

	return filter, nil
}
