package dbmodels

import (
	"time"

	"solar-projects-backend/models"
)

type DailyReport struct {
	BaseModel
	ProjectID  string                   `gorm:"type:varchar(36);index"`
	Project    *Project                 `gorm:"foreignKey:ProjectID"`
	ReporterID string                   `gorm:"type:varchar(36);index"`
	Reporter   *User                    `gorm:"foreignKey:ReporterID"`
	ReportDate time.Time                `gorm:"index"`
	Status     models.DailyReportStatus `gorm:"type:varchar(50);index"`

	WeatherCondition  string `gorm:"type:varchar(100)"`
	TemperatureC      *float64
	PersonnelOnSite   int
	WorkSummary       string
	IssuesEncountered string
	SafetyNotes       string
	HoursWorked       float64

	SubmittedAt     *time.Time
	ApproverID      *string `gorm:"type:varchar(36)"`
	Approver        *User   `gorm:"foreignKey:ApproverID"`
	ApprovedAt      *time.Time
	RejectionReason string

	Attachments []DailyReportAttachment `gorm:"foreignKey:DailyReportID"`
}

type DailyReportAttachment struct {
	BaseModel
	DailyReportID string `gorm:"type:varchar(36);index"`
	FileName      string `gorm:"type:varchar(255)"`
	StoragePath   string `gorm:"type:varchar(500)"`
	ContentType   string `gorm:"type:varchar(100)"`
	FileSize      int64
	UploadedByID  string `gorm:"type:varchar(36)"`
}
