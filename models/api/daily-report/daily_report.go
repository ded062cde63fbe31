package dailyreportapimodels

import (
	"time"

	"github.com/pkg/errors"

	"solar-projects-backend/models"
	apimodels "solar-projects-backend/models/api"
	dbmodels "solar-projects-backend/models/db"
)

type DailyReportData struct {
	ProjectID         string     `json:"project_id"`
	ReportDate        *time.Time `json:"report_date"`
	WeatherCondition  string     `json:"weather_condition"`
	TemperatureC      *float64   `json:"temperature_c"`
	PersonnelOnSite   int        `json:"personnel_on_site"`
	WorkSummary       string     `json:"work_summary"`
	IssuesEncountered string     `json:"issues_encountered"`
	SafetyNotes       string     `json:"safety_notes"`
	HoursWorked       float64    `json:"hours_worked"`
}

func (d DailyReportData) Validate() error {
	if d.ProjectID == "" {
		return errors.New("project id is required")
	}
	if d.WorkSummary == "" {
		return errors.New("work summary is required")
	}
	if d.PersonnelOnSite < 0 {
		return errors.New("personnel on site must not be negative")
	}
	if d.HoursWorked < 0 || d.HoursWorked > 24 {
		return errors.New("hours worked must be between 0 and 24")
	}
	return nil
}

type DailyReportView struct {
	DailyReportData
	ID              string                   `json:"id"`
	Status          models.DailyReportStatus `json:"status"`
	ReporterID      string                   `json:"reporter_id"`
	ReporterName    string                   `json:"reporter_name"`
	SubmittedAt     *time.Time               `json:"submitted_at"`
	ApproverID      *string                  `json:"approver_id"`
	ApprovedAt      *time.Time               `json:"approved_at"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	Attachments     []AttachmentView         `json:"attachments"`
	CreatedAt       time.Time                `json:"created_at"`
}

type AttachmentView struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

func ConvertToView(rec dbmodels.DailyReport) DailyReportView {
	view := DailyReportView{
		DailyReportData: DailyReportData{
			ProjectID:         rec.ProjectID,
			ReportDate:        &rec.ReportDate,
			WeatherCondition:  rec.WeatherCondition,
			TemperatureC:      rec.TemperatureC,
			PersonnelOnSite:   rec.PersonnelOnSite,
			WorkSummary:       rec.WorkSummary,
			IssuesEncountered: rec.IssuesEncountered,
			SafetyNotes:       rec.SafetyNotes,
			HoursWorked:       rec.HoursWorked,
		},
		ID:              rec.ID,
		Status:          rec.Status,
		ReporterID:      rec.ReporterID,
		SubmittedAt:     rec.SubmittedAt,
		ApproverID:      rec.ApproverID,
		ApprovedAt:      rec.ApprovedAt,
		RejectionReason: rec.RejectionReason,
		Attachments:     make([]AttachmentView, 0, len(rec.Attachments)),
		CreatedAt:       rec.CreatedAt,
	}
	if rec.Reporter != nil {
		view.ReporterName = rec.Reporter.GetDisplayName()
	}
	for _, att := range rec.Attachments {
		view.Attachments = append(view.Attachments, AttachmentView{
			ID:          att.ID,
			FileName:    att.FileName,
			ContentType: att.ContentType,
			FileSize:    att.FileSize,
		})
	}
	return view
}

type DailyReportFilter struct {
	apimodels.Pagination
	ProjectID  string                   `json:"project_id"`
	ReporterID string                   `json:"reporter_id"`
	Status     models.DailyReportStatus `json:"status"`
	DateFrom   *time.Time               `json:"date_from"`
	DateTo     *time.Time               `json:"date_to"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r RejectRequest) Validate() error {
	if r.Reason == "" {
		return errors.New("rejection reason is required")
	}
	return nil
}

type BulkStatusRequest struct {
	ReportIDs []string                 `json:"report_ids"`
	Status    models.DailyReportStatus `json:"status"`
	Reason    string                   `json:"reason"`
}

func (r BulkStatusRequest) Validate() error {
	if len(r.ReportIDs) == 0 {
		return errors.New("report ids are required")
	}
	if r.Status != models.DRStatusApproved && r.Status != models.DRStatusRejected {
		return errors.New("bulk status must be Approved or Rejected")
	}
	if r.Status == models.DRStatusRejected && r.Reason == "" {
		return errors.New("rejection reason is required")
	}
	return nil
}
