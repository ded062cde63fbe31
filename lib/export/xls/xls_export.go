package xlsexport

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"solar-projects-backend/lib/utils/helpers"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	ExportWorkRequestList(list []dbmodels.WorkRequest) (*bytes.Buffer, error)
	ExportDailyReportList(list []dbmodels.DailyReport) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const dateFormat = "02.01.2006"

var workRequestHeaders = []string{"Title", "Project", "Type", "Priority", "Status", "Requested by", "Assigned to", "Due date", "Estimated cost", "Actual cost", "Completed"}

func (i impl) ExportWorkRequestList(list []dbmodels.WorkRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, workRequestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		row, err = writeWorkRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Work requests")
	return f.WriteToBuffer()
}

func writeWorkRequestData(f *excelize.File, sheet string, list []dbmodels.WorkRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(workRequestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		col++
		if item.Project != nil {
			if err := writeColumn(f, sheet, col, row, item.Project.ProjectName); err != nil {
				return row, err
			}
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Type)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Priority)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		col++
		if item.RequestedBy != nil {
			if err := writeColumn(f, sheet, col, row, item.RequestedBy.GetDisplayName()); err != nil {
				return row, err
			}
		}

		col++
		if item.AssignedTo != nil {
			if err := writeColumn(f, sheet, col, row, item.AssignedTo.GetDisplayName()); err != nil {
				return row, err
			}
		}

		col++
		if err := writeDate(f, sheet, col, row, item.DueDate); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, helpers.Float64OrZero(item.EstimatedCost)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, helpers.Float64OrZero(item.ActualCost)); err != nil {
			return row, err
		}

		col++
		if err := writeDate(f, sheet, col, row, item.CompletedDate); err != nil {
			return row, err
		}
	}
	return row, nil
}

var dailyReportHeaders = []string{"Date", "Project", "Reporter", "Status", "Weather", "Personnel", "Hours worked", "Summary", "Issues"}

func (i impl) ExportDailyReportList(list []dbmodels.DailyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, dailyReportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		row, err = writeDailyReportData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Daily reports")
	return f.WriteToBuffer()
}

func writeDailyReportData(f *excelize.File, sheet string, list []dbmodels.DailyReport, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(dailyReportHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ReportDate.Format(dateFormat)); err != nil {
			return row, err
		}

		col++
		if item.Project != nil {
			if err := writeColumn(f, sheet, col, row, item.Project.ProjectName); err != nil {
				return row, err
			}
		}

		col++
		if item.Reporter != nil {
			if err := writeColumn(f, sheet, col, row, item.Reporter.GetDisplayName()); err != nil {
				return row, err
			}
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.WeatherCondition); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.PersonnelOnSite); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.HoursWorked); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.WorkSummary); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.IssuesEncountered); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeDate(f *excelize.File, sheet string, col, row int, value *time.Time) error {
	if value == nil {
		return nil
	}
	return writeColumn(f, sheet, col, row, value.Format(dateFormat))
}
