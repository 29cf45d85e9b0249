package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/middleware"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
	"github.com/shulehub/shule-backend/internal/validator"
)

// AttendanceHandler handles daily attendance.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	studentService    *service.StudentService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService, studentService *service.StudentService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, studentService: studentService}
}

// MarkAttendance godoc
// POST /api/v1/staff/attendance
// Marks one class for one day; re-marking overwrites earlier statuses.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attendanceService.Mark(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "attendance recorded"})
}

// StudentAttendance godoc
// GET /api/v1/students/:id/attendance?from=&to=
func (h *AttendanceHandler) StudentAttendance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.canViewStudent(c, id) {
		return
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	records, counts, err := h.attendanceService.ForStudent(c.Request.Context(), id, from, to)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records, "counts": counts})
}

// ClassRegister godoc
// GET /api/v1/staff/attendance/:classId?date=
func (h *AttendanceHandler) ClassRegister(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	date, err := time.Parse("2006-01-02", c.DefaultQuery("date", time.Now().Format("2006-01-02")))
	if err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, "date must be YYYY-MM-DD")
		return
	}

	records, err := h.attendanceService.Register(c.Request.Context(), classID, date)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// canViewStudent enforces that parents only read their own children.
// Writes the error response itself and returns false on denial.
func (h *AttendanceHandler) canViewStudent(c *gin.Context, studentID int) bool {
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

// parseDateRange parses from/to query params, defaulting to the last 30
// days when absent.
func parseDateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromRaw != "" {
		if from, err = time.Parse("2006-01-02", fromRaw); err != nil {
			return from, to, errors.New("from must be YYYY-MM-DD")
		}
	}
	if toRaw != "" {
		if to, err = time.Parse("2006-01-02", toRaw); err != nil {
			return from, to, errors.New("to must be YYYY-MM-DD")
		}
	}
	return from, to, nil
}
