package pdfexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solar-projects-backend/models"
	dbmodels "solar-projects-backend/models/db"
)

func TestExportWorkRequestList(t *testing.T) {
	cost := 25000.0
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	list := []dbmodels.WorkRequest{
		{
			Title:         "Replace inverter",
			Status:        models.WRStatusApproved,
			Type:          models.WRTypeMaintenance,
			Priority:      models.WRPriorityHigh,
			DueDate:       &due,
			EstimatedCost: &cost,
			Project: &dbmodels.Project{
				ProjectName: "Khon Kaen Solar Farm",
			},
		},
	}

	data, err := impl{}.ExportWorkRequestList(list)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestExportDailyReportList(t *testing.T) {
	t.Run(`empty list still renders the header`, func(t *testing.T) {
		data, err := impl{}.ExportDailyReportList(nil)
		require.NoError(t, err)
		require.Equal(t, "%PDF", string(data[:4]))
	})

	t.Run(`rows carry the report fields`, func(t *testing.T) {
		list := []dbmodels.DailyReport{
			{
				ReportDate:      time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
				Status:          models.DRStatusSubmitted,
				PersonnelOnSite: 12,
				HoursWorked:     96,
				WorkSummary:     "Mounted rails on section B",
			},
		}
		data, err := impl{}.ExportDailyReportList(list)
		require.NoError(t, err)
		require.NotEmpty(t, data)
	})
}
