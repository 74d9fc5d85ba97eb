package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"oshilog/database"
	"oshilog/middleware"
	"oshilog/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// 来源中文标签
var provenanceLabels = map[string]string{
	service.ProvenanceRealized:  "已记账",
	service.ProvenanceScheduled: "预定",
	service.ProvenanceProjected: "定期预计",
}

var typeLabels = map[string]string{
	"expense": "支出",
	"income":  "收入",
}

// exportViews 取导出窗口内的合并时间线
func (h *ExportHandler) exportViews(c *gin.Context) ([]service.TransactionView, time.Time, time.Time, bool) {
	userID := middleware.GetCurrentUserID(c)

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return nil, time.Time{}, time.Time{}, false
	}

	start, ok := parseDateParam(startStr)
	if !ok {
		BadRequest(c, "start 格式错误，应为: 2006-01-02")
		return nil, time.Time{}, time.Time{}, false
	}
	end, ok := parseDateParam(endStr)
	if !ok {
		BadRequest(c, "end 格式错误，应为: 2006-01-02")
		return nil, time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		BadRequest(c, "end 不能早于 start")
		return nil, time.Time{}, time.Time{}, false
	}

	reconciler := service.NewReconciler(database.NewStore(database.DB))
	views, err := reconciler.Reconcile(userID, start, end)
	if err != nil {
		ServiceError(c, err, "导出数据查询失败")
		return nil, time.Time{}, time.Time{}, false
	}
	return views, start, end, true
}

// ExportCSV 导出收支记录为 CSV
// @Summary 导出收支记录为 CSV
// @Description 导出窗口内的合并时间线（含预定与定期预计）
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start query string true "开始日期 (2025-01-01)"
// @Param end query string true "结束日期 (2025-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	views, start, end, ok := h.exportViews(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	headers := []string{"日期", "来源", "类型", "推し活", "金额(円)", "类别", "备注"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	for _, v := range views {
		oshi := ""
		if v.IsOshiRelated {
			oshi = "是"
		}
		row := []string{
			v.Date.Format("2006-01-02"),
			provenanceLabels[v.Provenance],
			typeLabels[v.Type],
			oshi,
			strconv.FormatInt(v.Amount, 10),
			v.Category,
			v.Memo,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("oshilog_%s_%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出收支记录为 Excel
// @Summary 导出收支记录为 Excel
// @Description 导出窗口内的合并时间线为带样式的 xlsx，末尾附收支合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start query string true "开始日期 (2025-01-01)"
// @Param end query string true "结束日期 (2025-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	views, start, end, ok := h.exportViews(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "収支記録"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 16)
	f.SetColWidth(sheetName, "G", "G", 30)

	headers := []string{"日期", "来源", "类型", "推し活", "金额(円)", "类别", "备注"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalExpense, totalIncome int64
	for i, v := range views {
		row := i + 2
		oshi := ""
		if v.IsOshiRelated {
			oshi = "是"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), v.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), provenanceLabels[v.Provenance])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), typeLabels[v.Type])
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), oshi)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), v.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), v.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), v.Memo)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)

		if v.Type == "expense" {
			totalExpense += v.Amount
		} else {
			totalIncome += v.Amount
		}
	}

	summaryRow := len(views) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("共 %d 条", len(views)))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), "支出")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), totalExpense)
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), "收入")
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", summaryRow), totalIncome)
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", summaryRow), fmt.Sprintf("结余 %d", totalIncome-totalExpense))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("収支記録_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "生成 Excel 失败"})
		return
	}
}
