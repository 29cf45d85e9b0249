package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
	"github.com/shulehub/shule-backend/internal/validator"
)

// PayrollHandler handles staff salary records.
type PayrollHandler struct {
	payrollService *service.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// CreateSalary godoc
// POST /api/v1/finance/salaries
// Records a monthly salary; statutory deductions are computed when not
// supplied.
func (h *PayrollHandler) CreateSalary(c *gin.Context) {
	var req model.CreateSalaryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	salary, err := h.payrollService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateSalaryPeriod):
			response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"salary": salary})
}

// periodQuery is the month/year selector for payroll listings.
type periodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required"`
}

// ListSalaries godoc
// GET /api/v1/finance/salaries?month=&year=
// Lists all salary records and totals for one month.
func (h *PayrollHandler) ListSalaries(c *gin.Context) {
	var q periodQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	month, year := q.Month, q.Year

	salaries, err := h.payrollService.ListByPeriod(c.Request.Context(), month, year)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	gross, deductions, net, err := h.payrollService.PeriodSummary(c.Request.Context(), month, year)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"salaries": salaries,
		"totals": gin.H{
			"gross":      gross,
			"deductions": deductions,
			"net":        net,
		},
	})
}

// StaffHistory godoc
// GET /api/v1/finance/salaries/staff/:id
func (h *PayrollHandler) StaffHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	salaries, err := h.payrollService.ListByStaff(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"salaries": salaries})
}

// MarkPaid godoc
// POST /api/v1/finance/salaries/:id/pay
func (h *PayrollHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	salary, err := h.payrollService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSalaryNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"salary": salary})
}
