package workrequestapimodels

import (
	"time"

	"github.com/pkg/errors"

	"solar-projects-backend/models"
	apimodels "solar-projects-backend/models/api"
	dbmodels "solar-projects-backend/models/db"
)

type WorkRequestData struct {
	ProjectID      string                     `json:"project_id"`
	Title          string                     `json:"title"`
	Description    string                     `json:"description"`
	Type           models.WorkRequestType     `json:"type"`
	Priority       models.WorkRequestPriority `json:"priority"`
	DueDate        *time.Time                 `json:"due_date"`
	Location       string                     `json:"location"`
	Notes          string                     `json:"notes"`
	EstimatedCost  *float64                   `json:"estimated_cost"`
	EstimatedHours *float64                   `json:"estimated_hours"`
}

func (w WorkRequestData) Validate() error {
	if w.ProjectID == "" {
		return errors.New("project id is required")
	}
	if w.Title == "" {
		return errors.New("title is required")
	}
	if w.EstimatedCost != nil && *w.EstimatedCost < 0 {
		return errors.New("estimated cost must not be negative")
	}
	if w.EstimatedHours != nil && *w.EstimatedHours < 0 {
		return errors.New("estimated hours must not be negative")
	}
	return nil
}

type WorkRequestView struct {
	WorkRequestData
	ID                       string                   `json:"id"`
	Status                   models.WorkRequestStatus `json:"status"`
	RequestedByID            string                   `json:"requested_by_id"`
	RequestedByName          string                   `json:"requested_by_name"`
	AssignedToID             *string                  `json:"assigned_to_id"`
	AssignedToName           string                   `json:"assigned_to_name"`
	RequestedDate            *time.Time               `json:"requested_date"`
	StartedAt                *time.Time               `json:"started_at"`
	CompletedDate            *time.Time               `json:"completed_date"`
	Resolution               string                   `json:"resolution,omitempty"`
	ActualCost               *float64                 `json:"actual_cost"`
	ActualHours              *float64                 `json:"actual_hours"`
	ManagerApproverID        *string                  `json:"manager_approver_id"`
	AdminApproverID          *string                  `json:"admin_approver_id"`
	ManagerApprovalDate      *time.Time               `json:"manager_approval_date"`
	AdminApprovalDate        *time.Time               `json:"admin_approval_date"`
	SubmittedForApprovalDate *time.Time               `json:"submitted_for_approval_date"`
	ManagerComments          string                   `json:"manager_comments,omitempty"`
	AdminComments            string                   `json:"admin_comments,omitempty"`
	RejectionReason          string                   `json:"rejection_reason,omitempty"`
	RequiresManagerApproval  bool                     `json:"requires_manager_approval"`
	RequiresAdminApproval    bool                     `json:"requires_admin_approval"`
	IsAutoApproved           bool                     `json:"is_auto_approved"`
	CreatedAt                time.Time                `json:"created_at"`
}

func ConvertToView(rec dbmodels.WorkRequest) WorkRequestView {
	view := WorkRequestView{
		WorkRequestData: WorkRequestData{
			ProjectID:      rec.ProjectID,
			Title:          rec.Title,
			Description:    rec.Description,
			Type:           rec.Type,
			Priority:       rec.Priority,
			DueDate:        rec.DueDate,
			Location:       rec.Location,
			Notes:          rec.Notes,
			EstimatedCost:  rec.EstimatedCost,
			EstimatedHours: rec.EstimatedHours,
		},
		ID:                       rec.ID,
		Status:                   rec.Status,
		RequestedByID:            rec.RequestedByID,
		AssignedToID:             rec.AssignedToID,
		RequestedDate:            rec.RequestedDate,
		StartedAt:                rec.StartedAt,
		CompletedDate:            rec.CompletedDate,
		Resolution:               rec.Resolution,
		ActualCost:               rec.ActualCost,
		ActualHours:              rec.ActualHours,
		ManagerApproverID:        rec.ManagerApproverID,
		AdminApproverID:          rec.AdminApproverID,
		ManagerApprovalDate:      rec.ManagerApprovalDate,
		AdminApprovalDate:        rec.AdminApprovalDate,
		SubmittedForApprovalDate: rec.SubmittedForApprovalDate,
		ManagerComments:          rec.ManagerComments,
		AdminComments:            rec.AdminComments,
		RejectionReason:          rec.RejectionReason,
		RequiresManagerApproval:  rec.RequiresManagerApproval,
		RequiresAdminApproval:    rec.RequiresAdminApproval,
		IsAutoApproved:           rec.IsAutoApproved,
		CreatedAt:                rec.CreatedAt,
	}
	if rec.RequestedBy != nil {
		view.RequestedByName = rec.RequestedBy.GetDisplayName()
	}
	if rec.AssignedTo != nil {
		view.AssignedToName = rec.AssignedTo.GetDisplayName()
	}
	return view
}

type WorkRequestFilter struct {
	apimodels.Pagination
	ProjectID     string                     `json:"project_id"`
	Status        models.WorkRequestStatus   `json:"status"`
	Type          models.WorkRequestType     `json:"type"`
	Priority      models.WorkRequestPriority `json:"priority"`
	RequestedByID string                     `json:"requested_by_id"`
	AssignedToID  string                     `json:"assigned_to_id"`
	Search        string                     `json:"search"` // matches title or description
}

type AssignRequest struct {
	AssignedToID string `json:"assigned_to_id"`
}

func (r AssignRequest) Validate() error {
	if r.AssignedToID == "" {
		return errors.New("assignee id is required")
	}
	return nil
}

type CompleteRequest struct {
	Resolution  string   `json:"resolution"`
	ActualCost  *float64 `json:"actual_cost"`
	ActualHours *float64 `json:"actual_hours"`
}

// SubmitRequest carries the optional routing hints for putting a draft
// into the approval chain. An empty body is a plain submission.
type SubmitRequest struct {
	PreferredManagerID    *string `json:"preferred_manager_id"`
	RequiresAdminApproval bool    `json:"requires_admin_approval"`
	Comments              string  `json:"comments"`
}

// ApprovalRequest is one workflow decision submitted by an approver.
type ApprovalRequest struct {
	Action           string  `json:"action"` // Approve, Reject or Escalate
	Comments         string  `json:"comments"`
	RejectionReason  string  `json:"rejection_reason"`
	EscalationReason string  `json:"escalation_reason"`
	EscalateToID     *string `json:"escalate_to_id"`
}

func (r ApprovalRequest) Validate() error {
	switch r.Action {
	case "Approve":
	case "Reject":
		if r.RejectionReason == "" {
			return errors.New("rejection reason is required")
		}
	case "Escalate":
		if r.EscalationReason == "" {
			return errors.New("escalation reason is required")
		}
	default:
		return errors.New("action must be Approve, Reject or Escalate")
	}
	return nil
}

type BulkApprovalRequest struct {
	WorkRequestIDs []string `json:"work_request_ids"`
	ApprovalRequest
}

func (r BulkApprovalRequest) Validate() error {
	if len(r.WorkRequestIDs) == 0 {
		return errors.New("work request ids are required")
	}
	// Escalation needs a per-request target and stays a single-item
	// operation.
	if r.Action == "Escalate" {
		return errors.New("bulk action must be Approve or Reject")
	}
	return r.ApprovalRequest.Validate()
}

// BulkApprovalItemResult reports the outcome for a single request in a
// bulk operation. Failures never roll back other items.
type BulkApprovalItemResult struct {
	WorkRequestID string `json:"work_request_id"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type BulkApprovalResult struct {
	Processed int                      `json:"processed"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Items     []BulkApprovalItemResult `json:"items"`
}

type ApprovalStatusView struct {
	WorkRequestID           string                   `json:"work_request_id"`
	Status                  models.WorkRequestStatus `json:"status"`
	CurrentLevel            *models.ApprovalLevel    `json:"current_level"`
	CurrentApproverID       *string                  `json:"current_approver_id"`
	CurrentApproverName     string                   `json:"current_approver_name,omitempty"`
	NextApproverID          *string                  `json:"next_approver_id"`
	NextApproverName        string                   `json:"next_approver_name,omitempty"`
	RequiresManagerApproval bool                     `json:"requires_manager_approval"`
	RequiresAdminApproval   bool                     `json:"requires_admin_approval"`
	IsAutoApproved          bool                     `json:"is_auto_approved"`
	SubmittedAt             *time.Time               `json:"submitted_at"`
	DaysPending             int                      `json:"days_pending"`
}

type ApprovalRecordView struct {
	ID               string                   `json:"id"`
	WorkRequestID    string                   `json:"work_request_id"`
	ApproverID       string                   `json:"approver_id"`
	ApproverName     string                   `json:"approver_name"`
	Action           models.ApprovalAction    `json:"action"`
	Level            models.ApprovalLevel     `json:"level"`
	PreviousStatus   models.WorkRequestStatus `json:"previous_status"`
	NewStatus        models.WorkRequestStatus `json:"new_status"`
	Comments         string                   `json:"comments,omitempty"`
	RejectionReason  string                   `json:"rejection_reason,omitempty"`
	EscalationReason string                   `json:"escalation_reason,omitempty"`
	ProcessedAt      *time.Time               `json:"processed_at"`
	IsActive         bool                     `json:"is_active"`
	CreatedAt        time.Time                `json:"created_at"`
}

func ConvertApprovalToView(rec dbmodels.WorkRequestApproval) ApprovalRecordView {
	view := ApprovalRecordView{
		ID:               rec.ID,
		WorkRequestID:    rec.WorkRequestID,
		ApproverID:       rec.ApproverID,
		Action:           rec.Action,
		Level:            rec.Level,
		PreviousStatus:   rec.PreviousStatus,
		NewStatus:        rec.NewStatus,
		Comments:         rec.Comments,
		RejectionReason:  rec.RejectionReason,
		EscalationReason: rec.EscalationReason,
		ProcessedAt:      rec.ProcessedAt,
		IsActive:         rec.IsActive,
		CreatedAt:        rec.CreatedAt,
	}
	if rec.Approver != nil {
		view.ApproverName = rec.Approver.GetDisplayName()
	}
	return view
}

type PendingApprovalView struct {
	WorkRequestView
	Level       models.ApprovalLevel `json:"level"`
	DaysPending int                  `json:"days_pending"`
}

type ApprovalStatistics struct {
	TotalSubmitted   int64   `json:"total_submitted"`
	PendingManager   int64   `json:"pending_manager"`
	PendingAdmin     int64   `json:"pending_admin"`
	Approved         int64   `json:"approved"`
	Rejected         int64   `json:"rejected"`
	AutoApproved     int64   `json:"auto_approved"`
	AvgApprovalHours float64 `json:"avg_approval_hours"`
}
