package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/middleware"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
	"github.com/shulehub/shule-backend/internal/validator"
)

// GradeHandler handles single grade entry and grade reports.
type GradeHandler struct {
	gradeService   *service.GradeService
	studentService *service.StudentService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService, studentService *service.StudentService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService, studentService: studentService}
}

// CreateGrade godoc
// POST /api/v1/staff/grades
// Records one grade; the CBC band is derived from marks.
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req model.CreateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidExamType):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrSubjectNotFound):
			response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateGrade):
			response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}

// StudentReport godoc
// GET /api/v1/students/:id/grades?term=&year=
// Returns a student's grades joined with subject names. Parents only
// see their own children.
func (h *GradeHandler) StudentReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.canViewStudent(c, id) {
		return
	}

	term := c.Query("term")
	year := 0
	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
	}

	grades, err := h.gradeService.ReportForStudent(c.Request.Context(), id, term, year)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// canViewStudent enforces that parents only read their own children.
// Writes the error response itself and returns false on denial.
func (h *GradeHandler) canViewStudent(c *gin.Context, studentID int) bool {
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
