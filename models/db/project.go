package dbmodels

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"solar-projects-backend/models"
)

type Project struct {
	BaseModel
	ProjectName      string `gorm:"type:varchar(255)"`
	Address          string `gorm:"type:varchar(500)"`
	ClientInfo       string
	Status           models.ProjectStatus `gorm:"type:varchar(50);index"`
	StartDate        *time.Time
	EstimatedEndDate *time.Time
	ActualEndDate    *time.Time
	ProjectManagerID *string `gorm:"type:varchar(36)"`
	ProjectManager   *User   `gorm:"foreignKey:ProjectManagerID"`
	// Site coordinates drive regional routing and map views.
	Latitude  *float64
	Longitude *float64
	// Solar installation details.
	TotalCapacityKw *float64
	PvModuleCount   *int
	ConnectionType  string `gorm:"type:varchar(50)"`
	FtsValue        *float64
	RevenueValue    *float64
	PqmValue        *float64

	CompletionPercentage float64

	Tasks        []ProjectTask `gorm:"foreignKey:ProjectID"`
	WorkRequests []WorkRequest `gorm:"foreignKey:ProjectID"`
	DailyReports []DailyReport `gorm:"foreignKey:ProjectID"`
}

type ProjectTask struct {
	BaseModel
	ProjectID     string                   `gorm:"type:varchar(36);index"`
	Title         string                   `gorm:"type:varchar(255)"`
	Description   string
	Status        models.ProjectTaskStatus `gorm:"type:varchar(50)"`
	AssignedToID  *string                  `gorm:"type:varchar(36)"`
	AssignedTo    *User                    `gorm:"foreignKey:AssignedToID"`
	DueDate       *time.Time
	CompletedAt   *time.Time
	WeightPercent float64
	ProgressNotes string
}

func (p *Project) AfterDelete(tx *gorm.DB) (err error) {
	if p.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("project_id = ?", p.ID).Delete(&ProjectTask{})
	tx.Clauses(clause.Returning{}).Where("project_id = ?", p.ID).Delete(&DailyReport{})
	return
}
