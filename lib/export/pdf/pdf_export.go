package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"solar-projects-backend/lib/utils/helpers"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	ExportWorkRequestList(list []dbmodels.WorkRequest) ([]byte, error)
	ExportDailyReportList(list []dbmodels.DailyReport) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	dateFormat = "02.01.2006"
	rowHeight  = 8.0
	fontFamily = "Helvetica"
)

type column struct {
	title string
	width float64
}

var workRequestColumns = []column{
	{"Title", 60},
	{"Project", 45},
	{"Type", 25},
	{"Priority", 22},
	{"Status", 38},
	{"Due date", 25},
	{"Est. cost", 25},
	{"Act. cost", 25},
}

func (i impl) ExportWorkRequestList(list []dbmodels.WorkRequest) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("work request pdf export panic recover: %v", r)
		}
	}()
	pdf := newDoc("Work requests")
	writeHeader(pdf, workRequestColumns)
	for _, item := range list {
		projectName := ""
		if item.Project != nil {
			projectName = item.Project.ProjectName
		}
		writeRow(pdf, workRequestColumns, []string{
			item.Title,
			projectName,
			string(item.Type),
			string(item.Priority),
			string(item.Status),
			formatDate(item.DueDate),
			formatAmount(item.EstimatedCost),
			formatAmount(item.ActualCost),
		})
	}
	return output(pdf)
}

var dailyReportColumns = []column{
	{"Date", 25},
	{"Project", 50},
	{"Reporter", 40},
	{"Status", 28},
	{"Personnel", 22},
	{"Hours", 18},
	{"Summary", 82},
}

func (i impl) ExportDailyReportList(list []dbmodels.DailyReport) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("daily report pdf export panic recover: %v", r)
		}
	}()
	pdf := newDoc("Daily reports")
	writeHeader(pdf, dailyReportColumns)
	for _, item := range list {
		projectName := ""
		if item.Project != nil {
			projectName = item.Project.ProjectName
		}
		reporterName := ""
		if item.Reporter != nil {
			reporterName = item.Reporter.GetDisplayName()
		}
		writeRow(pdf, dailyReportColumns, []string{
			item.ReportDate.Format(dateFormat),
			projectName,
			reporterName,
			string(item.Status),
			fmt.Sprintf("%d", item.PersonnelOnSite),
			fmt.Sprintf("%.1f", item.HoursWorked),
			item.WorkSummary,
		})
	}
	return output(pdf)
}

func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	return pdf
}

func writeHeader(pdf *fpdf.Fpdf, cols []column) {
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range cols {
		pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeRow(pdf *fpdf.Fpdf, cols []column, values []string) {
	pdf.SetFont(fontFamily, "", 9)
	for n, col := range cols {
		pdf.CellFormat(col.width, rowHeight, values[n], "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateFormat)
}

func formatAmount(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", helpers.Float64OrZero(value))
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err := pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
