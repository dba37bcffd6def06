package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/service"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc     service.ExportService
	exposeDetails bool
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, exposeDetails bool) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, exposeDetails: exposeDetails}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportPurchaseRequests 导出采购申请
// GET /api/purchase-requests/export?status=&department=
func (h *ExportHandler) ExportPurchaseRequests(c *gin.Context) {
	var req dto.PurchaseRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequestBody(c, "Invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportPurchaseRequests(c.Request.Context(), &req)
	if err != nil {
		errorMapping{internal: "Failed to export purchase requests", exposeDetails: h.exposeDetails}.write(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
