package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/metrics"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/storage"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// header is the fixed payroll report column order. Downstream spreadsheets
// key on these names, do not reorder.
var header = []string{
	"Employee Name",
	"Total Hours",
	"Regular Hours",
	"Overtime Hours",
	"Late Days",
	"Offline Days",
	"Hourly Rate",
	"Gross Pay",
	"Late Deductions",
	"Offline Deductions",
	"Net Pay",
}

type ExportService interface {
	// Render produces the payroll report for a run in the requested format
	// and returns the file bytes with their content type.
	Render(run payroll.Run, format string) ([]byte, string, error)

	// ExportRun loads a persisted run, renders it, stores a copy through
	// file storage and returns the bytes, content type and download filename.
	ExportRun(ctx context.Context, runID, format string) ([]byte, string, string, error)
}

type ExportServiceImpl struct {
	runRepo     payroll.RunRepository
	fileStorage storage.FileStorage
	metrics     *metrics.Metrics
}

func NewExportService(runRepo payroll.RunRepository, fileStorage storage.FileStorage, m *metrics.Metrics) ExportService {
	return &ExportServiceImpl{runRepo: runRepo, fileStorage: fileStorage, metrics: m}
}

// Render implements ExportService.
func (s *ExportServiceImpl) Render(run payroll.Run, format string) ([]byte, string, error) {
	var (
		data        []byte
		contentType string
		err         error
	)

	switch format {
	case FormatCSV:
		data, err = renderCSV(run.Summaries)
		contentType = "text/csv"
	case FormatXLSX:
		data, err = renderXLSX(run.Summaries)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, "", payroll.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, "", err
	}

	if s.metrics != nil {
		s.metrics.ExportsRendered.Inc()
	}

	return data, contentType, nil
}

// ExportRun implements ExportService.
func (s *ExportServiceImpl) ExportRun(ctx context.Context, runID, format string) ([]byte, string, string, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, "", "", err
	}

	data, contentType, err := s.Render(run, format)
	if err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("payroll_%s_%s.%s", run.PeriodFrom, run.PeriodTo, format)
	path := fmt.Sprintf("exports/%s_%s", time.Now().Format("20060102150405"), filename)
	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(data), path, contentType); err != nil {
		return nil, "", "", fmt.Errorf("failed to store export: %w", err)
	}

	return data, contentType, filename, nil
}

func renderCSV(summaries []payroll.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, sum := range summaries {
		if err := w.Write(summaryRow(sum)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func renderXLSX(summaries []payroll.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for i, sum := range summaries {
		for col, value := range summaryRow(sum) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set row cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}

	return buf.Bytes(), nil
}

func summaryRow(sum payroll.Summary) []string {
	return []string{
		sum.EmployeeName,
		fmt.Sprintf("%.2f", sum.TotalHours),
		fmt.Sprintf("%.2f", sum.RegularHours),
		fmt.Sprintf("%.2f", sum.OvertimeHours),
		fmt.Sprintf("%d", sum.LateDays),
		fmt.Sprintf("%d", sum.OfflineDays),
		"$" + sum.HourlyRate.StringFixed(2),
		"$" + sum.GrossPay.StringFixed(2),
		"$" + sum.LateDeductions.StringFixed(2),
		"$" + sum.OfflineDeductions.StringFixed(2),
		"$" + sum.NetPay.StringFixed(2),
	}
}
