package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
)

// ReportHandler serves CSV report downloads.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ClassGrades godoc
// GET /api/v1/staff/reports/classes/:id/grades?term=&year=
// Downloads a class's grades for a term as CSV.
func (h *ReportHandler) ClassGrades(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	term := c.Query("term")
	year, yearErr := strconv.Atoi(c.Query("year"))
	if term == "" || yearErr != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, "term and year are required")
		return
	}

	data, err := h.reportService.ClassGradesCSV(c.Request.Context(), classID, term, year)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("class_%d_grades_%s_%d.csv", classID, term, year)
	serveCSV(c, filename, data)
}

// ClassFeeBalances godoc
// GET /api/v1/finance/reports/classes/:id/balances
// Downloads per-student fee balances for a class as CSV.
func (h *ReportHandler) ClassFeeBalances(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	data, err := h.reportService.ClassFeeBalancesCSV(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	serveCSV(c, fmt.Sprintf("class_%d_fee_balances.csv", classID), data)
}

func serveCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
