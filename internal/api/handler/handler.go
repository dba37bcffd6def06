package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/internal/service"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
	"github.com/funnyprom/work-management-system/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	PurchaseRequest *PurchaseRequestHandler
	Task            *TaskHandler
	Department      *DepartmentHandler
	User            *UserHandler
	Export          *ExportHandler
	System          *SystemHandler
}

// NewHandler 创建 Handler 聚合
// exposeDetails 为 true 时 5xx 响应携带底层错误信息
func NewHandler(svc *service.Service, exposeDetails bool) *Handler {
	return &Handler{
		PurchaseRequest: NewPurchaseRequestHandler(svc.PurchaseRequest, exposeDetails),
		Task:            NewTaskHandler(svc.Task, exposeDetails),
		Department:      NewDepartmentHandler(svc.Department, exposeDetails),
		User:            NewUserHandler(svc.User, exposeDetails),
		Export:          NewExportHandler(svc.Export, exposeDetails),
		System:          NewSystemHandler(),
	}
}

// errorMapping 模块级错误映射所需的提示语
type errorMapping struct {
	notFound      string // 404 提示
	internal      string // 500 提示
	exposeDetails bool
}

// write 按错误类型写出响应：
//   - *ValidationError → 400，提示语直接返回
//   - ErrNotFound     → 404
//   - 其他            → 500，按配置决定是否附带详情
func (m errorMapping) write(c *gin.Context, err error) {
	var ve *pkgerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Error())
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, m.notFound)
	default:
		details := ""
		if m.exposeDetails {
			details = rootCause(err).Error()
		}
		response.InternalError(c, m.internal, details)
	}
}

// rootCause 取存储层原始错误用于详情输出
func rootCause(err error) error {
	var pe *pkgerrors.PersistenceError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}
	return err
}

// badRequestBody 请求体无法解析
func badRequestBody(c *gin.Context, message string) {
	response.Error(c, http.StatusBadRequest, message)
}
