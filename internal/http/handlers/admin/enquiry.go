package admin

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetEnquiries 获取询价单列表
func (h *Handler) GetEnquiries(c *gin.Context) {
	input, ok := readEnquiryFilter(c)
	if !ok {
		return
	}

	enquiries, total, err := h.EnquiryService.List(input)
	if err != nil {
		respondError(c, response.CodeInternal, "error.enquiry_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, enquiries, handlershared.BuildPagination(input.Page, input.PageSize, total))
}

// GetRecentEnquiries 获取最近询价单
func (h *Handler) GetRecentEnquiries(c *gin.Context) {
	limit := handlershared.ParseQueryInt(c, "limit", 20)
	enquiries, err := h.EnquiryService.Recent(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.enquiry_fetch_failed", err)
		return
	}
	response.Success(c, enquiries)
}

// GetEnquiry 获取询价单详情
func (h *Handler) GetEnquiry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	enquiry, err := h.EnquiryService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrEnquiryNotFound) {
			respondError(c, response.CodeNotFound, "error.enquiry_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.enquiry_fetch_failed", err)
		return
	}
	response.Success(c, enquiry)
}

// ExportEnquiries 导出询价单 (xlsx)
func (h *Handler) ExportEnquiries(c *gin.Context) {
	input, ok := readEnquiryFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.EnquiryService.Export(input, &buf); err != nil {
		respondError(c, response.CodeInternal, "error.export_failed", err)
		return
	}

	filename := fmt.Sprintf("enquiries_%s.xlsx", time.Now().Format("20060102_150405"))
	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

// StreamEnquiries 通过 WebSocket 推送新询价与留言事件
func (h *Handler) StreamEnquiries(c *gin.Context) {
	if h.Hub == nil {
		respondError(c, response.CodeInternal, "error.internal", nil)
		return
	}
	if err := h.Hub.ServeWS(c.Writer, c.Request); err != nil {
		requestLog(c).Warnw("admin_realtime_upgrade_failed", "error", err)
	}
}

func readEnquiryFilter(c *gin.Context) (service.EnquiryListInput, bool) {
	page, pageSize := handlershared.ReadPagination(c)
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return service.EnquiryListInput{}, false
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return service.EnquiryListInput{}, false
	}
	return service.EnquiryListInput{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     c.Query("keyword"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}, true
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return &parsed, nil
	}
	parsed, err = time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
