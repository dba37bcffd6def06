package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/service"
	"github.com/funnyprom/work-management-system/pkg/response"
)

// PurchaseRequestHandler 采购申请模块 HTTP 处理器
type PurchaseRequestHandler struct {
	prSvc         service.PurchaseRequestService
	exposeDetails bool
}

// NewPurchaseRequestHandler 创建 PurchaseRequestHandler
func NewPurchaseRequestHandler(prSvc service.PurchaseRequestService, exposeDetails bool) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{prSvc: prSvc, exposeDetails: exposeDetails}
}

// ListPurchaseRequests 获取采购申请列表（含明细）
// GET /api/purchase-requests?status=&department=
func (h *PurchaseRequestHandler) ListPurchaseRequests(c *gin.Context) {
	var req dto.PurchaseRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequestBody(c, "Invalid query parameters")
		return
	}

	prs, err := h.prSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handlePurchaseRequestError(c, err, "Failed to fetch purchase requests")
		return
	}

	response.OK(c, prs)
}

// GetPurchaseRequest 获取单个采购申请
// GET /api/purchase-requests/:id
func (h *PurchaseRequestHandler) GetPurchaseRequest(c *gin.Context) {
	pr, err := h.prSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePurchaseRequestError(c, err, "Failed to fetch purchase request")
		return
	}

	response.OK(c, pr)
}

// CreatePurchaseRequest 创建采购申请
// POST /api/purchase-requests
func (h *PurchaseRequestHandler) CreatePurchaseRequest(c *gin.Context) {
	var req dto.PurchaseRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, "Invalid request body")
		return
	}

	pr, err := h.prSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePurchaseRequestError(c, err, "Failed to create purchase request")
		return
	}

	response.Created(c, pr)
}

// UpdatePurchaseRequest 全量更新采购申请（明细整体替换）
// PUT /api/purchase-requests/:id
func (h *PurchaseRequestHandler) UpdatePurchaseRequest(c *gin.Context) {
	var req dto.PurchaseRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, "Invalid request body")
		return
	}

	pr, err := h.prSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePurchaseRequestError(c, err, "Failed to update purchase request")
		return
	}

	response.OK(c, pr)
}

// DeletePurchaseRequest 软删除采购申请
// DELETE /api/purchase-requests/:id
func (h *PurchaseRequestHandler) DeletePurchaseRequest(c *gin.Context) {
	if err := h.prSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePurchaseRequestError(c, err, "Failed to delete purchase request")
		return
	}

	response.Message(c, "Purchase request deleted successfully")
}

// GetStats 采购申请统计汇总
// GET /api/purchase-requests/stats/summary
func (h *PurchaseRequestHandler) GetStats(c *gin.Context) {
	stats, err := h.prSvc.Stats(c.Request.Context())
	if err != nil {
		h.handlePurchaseRequestError(c, err, "Failed to fetch statistics")
		return
	}

	response.OK(c, stats)
}

// handlePurchaseRequestError 统一处理采购申请模块业务错误
func (h *PurchaseRequestHandler) handlePurchaseRequestError(c *gin.Context, err error, internal string) {
	errorMapping{
		notFound:      "Purchase request not found",
		internal:      internal,
		exposeDetails: h.exposeDetails,
	}.write(c, err)
}
