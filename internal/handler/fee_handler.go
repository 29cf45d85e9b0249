package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/middleware"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
	"github.com/shulehub/shule-backend/internal/validator"
)

// FeeHandler handles fee statements, payments and balances.
type FeeHandler struct {
	feeService     *service.FeeService
	studentService *service.StudentService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeService *service.FeeService, studentService *service.StudentService) *FeeHandler {
	return &FeeHandler{feeService: feeService, studentService: studentService}
}

// CreateStatement godoc
// POST /api/v1/finance/statements
func (h *FeeHandler) CreateStatement(c *gin.Context) {
	var req model.CreateStatementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	statement, err := h.feeService.CreateStatement(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateStatement):
			response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, err.Error())
		default:
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"statement": statement})
}

// RecordPayment godoc
// POST /api/v1/finance/payments
// Records a payment and returns it with the generated receipt number.
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payment, balance, err := h.feeService.RecordPayment(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrStatementNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment, "balance": balance})
}

// GetStatement godoc
// GET /api/v1/finance/statements/:id
func (h *FeeHandler) GetStatement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.feeService.GetStatement(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStatementNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statement": view})
}

// StudentStatements godoc
// GET /api/v1/students/:id/fees
// Lists a student's statements with derived balances. Parents only see
// their own children.
func (h *FeeHandler) StudentStatements(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.canViewStudent(c, id) {
		return
	}

	views, err := h.feeService.ListStatements(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var balance float64
	for _, v := range views {
		balance += v.Balance
	}

	response.Success(c, http.StatusOK, gin.H{"statements": views, "balance": balance})
}

// ListOverdue godoc
// GET /api/v1/finance/overdue
// Lists past-due statements with positive balances.
func (h *FeeHandler) ListOverdue(c *gin.Context) {
	overdue, err := h.feeService.ListOverdue(c.Request.Context(), time.Now())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"overdue": overdue})
}

func (h *FeeHandler) canViewStudent(c *gin.Context, studentID int) bool {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return false
	}
	if claims.Role != model.RoleParent {
		return true
	}

	owned, err := h.studentService.OwnedByParent(c.Request.Context(), studentID, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}
	if !owned {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return false
	}
	return true
}
