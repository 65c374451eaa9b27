package admin

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImportFileSize = 10 << 20

// ExportProducts 导出商品表格
func (h *Handler) ExportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.ProductTransferService.Export(&buf); err != nil {
		respondError(c, response.CodeInternal, "error.export_failed", err)
		return
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102_150405"))
	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

// ImportProducts 按 slug 批量导入商品
func (h *Handler) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	if fileHeader.Size > maxImportFileSize {
		respondError(c, response.CodeBadRequest, "error.upload_too_large", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.import_file_invalid", err)
		return
	}
	defer file.Close()

	result, err := h.ProductTransferService.Import(file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, service.ErrImportFileInvalid) {
			respondError(c, response.CodeBadRequest, "error.import_file_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.import_failed", err)
		return
	}
	requestLog(c).Infow("admin_product_import_done",
		"filename", fileHeader.Filename,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	response.Success(c, result)
}
