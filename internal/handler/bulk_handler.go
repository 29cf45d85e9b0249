package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/bulkimport"
	"github.com/shulehub/shule-backend/internal/config"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
)

// BulkHandler handles CSV/XLSX bulk import uploads.
type BulkHandler struct {
	cfg           *config.Config
	importService *service.ImportService
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(cfg *config.Config, importService *service.ImportService) *BulkHandler {
	return &BulkHandler{cfg: cfg, importService: importService}
}

// Import godoc
// POST /api/v1/admin/imports/:kind
// Accepts a multipart "file" upload of parents, students or grades.
// Row-level failures land in the result; only malformed files or
// unrecognized headers reject the whole batch.
func (h *BulkHandler) Import(c *gin.Context) {
	kind := c.Param("kind")
	if kind != string(bulkimport.KindParents) &&
		kind != string(bulkimport.KindStudents) &&
		kind != string(bulkimport.KindGrades) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var result *bulkimport.BatchResult
	ctx := c.Request.Context()
	switch bulkimport.Kind(kind) {
	case bulkimport.KindParents:
		result, err = h.importService.ImportParents(ctx, fileHeader.Filename, data)
	case bulkimport.KindStudents:
		result, err = h.importService.ImportStudents(ctx, fileHeader.Filename, data)
	default:
		result, err = h.importService.ImportGrades(ctx, fileHeader.Filename, data)
	}

	if err != nil {
		if errors.Is(err, bulkimport.ErrUnsupportedFile) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
			return
		}
		// Empty-file and schema-detection errors carry the reason.
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrBatchRejected, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
