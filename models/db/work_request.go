package dbmodels

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"solar-projects-backend/models"
)

type WorkRequest struct {
	BaseModel
	ProjectID   string   `gorm:"type:varchar(36);index"`
	Project     *Project `gorm:"foreignKey:ProjectID"`
	Title       string   `gorm:"type:varchar(255)"`
	Description string
	Type        models.WorkRequestType     `gorm:"type:varchar(50)"`
	Priority    models.WorkRequestPriority `gorm:"type:varchar(50)"`
	// Status changes only go through lib/work-request/approval.
	Status models.WorkRequestStatus `gorm:"type:varchar(50);index"`

	RequestedByID string  `gorm:"type:varchar(36);index"`
	RequestedBy   *User   `gorm:"foreignKey:RequestedByID"`
	AssignedToID  *string `gorm:"type:varchar(36);index"`
	AssignedTo    *User   `gorm:"foreignKey:AssignedToID"`

	RequestedDate *time.Time
	DueDate       *time.Time
	StartedAt     *time.Time
	CompletedDate *time.Time
	Resolution    string
	Location      string `gorm:"type:varchar(255)"`
	Notes         string

	EstimatedCost  *float64
	ActualCost     *float64
	EstimatedHours *float64
	ActualHours    *float64

	// Approval workflow fields.
	ManagerApproverID        *string `gorm:"type:varchar(36)"`
	ManagerApprover          *User   `gorm:"foreignKey:ManagerApproverID"`
	AdminApproverID          *string `gorm:"type:varchar(36)"`
	AdminApprover            *User   `gorm:"foreignKey:AdminApproverID"`
	ManagerApprovalDate      *time.Time
	AdminApprovalDate        *time.Time
	SubmittedForApprovalDate *time.Time
	ManagerComments          string
	AdminComments            string
	RejectionReason          string
	RequiresManagerApproval  bool
	RequiresAdminApproval    bool
	IsAutoApproved           bool

	Approvals []WorkRequestApproval `gorm:"foreignKey:WorkRequestID"`
}

// CurrentApprovalLevel reports which level the request is waiting on.
func (r WorkRequest) CurrentApprovalLevel() (models.ApprovalLevel, bool) {
	switch r.Status {
	case models.WRStatusPendingManagerApproval:
		return models.ApprovalLevelManager, true
	case models.WRStatusPendingAdminApproval:
		return models.ApprovalLevelAdmin, true
	}
	return "", false
}

// CurrentApproverID is the user responsible for the pending level, if any.
func (r WorkRequest) CurrentApproverID() *string {
	level, ok := r.CurrentApprovalLevel()
	if !ok {
		return nil
	}
	if level == models.ApprovalLevelManager {
		return r.ManagerApproverID
	}
	return r.AdminApproverID
}

func (r WorkRequest) DaysPendingApproval(now time.Time) int {
	if !r.Status.IsPending() || r.SubmittedForApprovalDate == nil {
		return 0
	}
	return int(now.Sub(*r.SubmittedForApprovalDate).Hours() / 24)
}

func (r *WorkRequest) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("work_request_id = ?", r.ID).Delete(&WorkRequestApproval{})
	return
}

// WorkRequestApproval is one record of the append-only approval audit
// trail. A record is never mutated after creation except to close it
// (ProcessedAt set, IsActive dropped). At most one record is active per
// pending level.
type WorkRequestApproval struct {
	BaseModel
	WorkRequestID    string                   `gorm:"type:varchar(36);index"`
	ApproverID       string                   `gorm:"type:varchar(36)"`
	Approver         *User                    `gorm:"foreignKey:ApproverID"`
	Action           models.ApprovalAction    `gorm:"type:varchar(50)"`
	Level            models.ApprovalLevel     `gorm:"type:varchar(50)"`
	PreviousStatus   models.WorkRequestStatus `gorm:"type:varchar(50)"`
	NewStatus        models.WorkRequestStatus `gorm:"type:varchar(50)"`
	Comments         string
	RejectionReason  string
	EscalationReason string
	EscalationDate   *time.Time
	ProcessedAt      *time.Time
	IsActive         bool `gorm:"index"`
}
