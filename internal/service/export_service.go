package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/model"
	"github.com/funnyprom/work-management-system/internal/repository"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出当前有效（未软删除）的采购申请，过滤条件与列表接口一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：Sheet "Purchase Requests" 每行一张申请；Sheet "Items" 每行一条明细
type ExportService interface {
	// ExportPurchaseRequests 导出采购申请为 Excel
	ExportPurchaseRequests(ctx context.Context, req *dto.PurchaseRequestListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const (
	prSheet   = "Purchase Requests"
	itemSheet = "Items"
)

var (
	prHeaders   = []string{"ID", "Request Number", "Requestor", "Department", "Date", "Status", "Total Amount", "Notes", "Items"}
	itemHeaders = []string{"Request ID", "Request Number", "Item", "Description", "Quantity", "Unit Price", "Total Price"}
)

// ═══════════════════════════════════════════════════════════
// ExportPurchaseRequests 导出采购申请为 Excel
// ═══════════════════════════════════════════════════════════
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportPurchaseRequests(ctx context.Context, req *dto.PurchaseRequestListRequest) (*bytes.Buffer, string, error) {
	filter := repository.PurchaseRequestFilter{}
	if req != nil {
		filter.Status = req.Status
		filter.Department = req.Department
	}

	prs, err := s.repo.PurchaseRequest.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询采购申请失败", zap.Error(err))
		return nil, "", pkgerrors.Persistence("导出采购申请", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(prSheet)
	f.SetActiveSheet(idx)
	f.NewSheet(itemSheet)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	writeHeader(f, prSheet, prHeaders, headerStyle)
	writeHeader(f, itemSheet, itemHeaders, headerStyle)
	f.SetColWidth(prSheet, "A", "A", 38)
	f.SetColWidth(prSheet, "B", "H", 18)
	f.SetColWidth(itemSheet, "A", "A", 38)
	f.SetColWidth(itemSheet, "B", "G", 18)

	itemRow := 2
	for i := range prs {
		pr := &prs[i]
		row := i + 2
		setRow(f, prSheet, row, []interface{}{
			pr.PRGuid,
			pr.RequestNumber,
			pr.Requestor,
			pr.Department,
			pr.RequestDate.UTC().Format("2006-01-02"),
			pr.Status,
			pr.TotalAmount.InexactFloat64(),
			pr.Notes,
			len(pr.Items),
		})
		f.SetCellStyle(prSheet, cell("G", row), cell("G", row), moneyStyle)

		itemRow = writeItems(f, pr, itemRow, moneyStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	s.logger.Info("采购申请已导出", zap.Int("count", len(prs)))
	filename := fmt.Sprintf("purchase_requests_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// writeItems 写入一张申请的全部明细，返回下一个空行号
func writeItems(f *excelize.File, pr *model.PurchaseRequest, row, moneyStyle int) int {
	for _, item := range pr.Items {
		setRow(f, itemSheet, row, []interface{}{
			pr.PRGuid,
			pr.RequestNumber,
			item.ItemName,
			item.Description,
			item.Quantity,
			item.UnitPrice.InexactFloat64(),
			item.TotalPrice.InexactFloat64(),
		})
		f.SetCellStyle(itemSheet, cell("F", row), cell("G", row), moneyStyle)
		row++
	}
	return row
}

// ── 辅助函数 ──

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
