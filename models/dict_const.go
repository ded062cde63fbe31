package models

// WorkRequestStatus is the approval-workflow state of a work request.
// Transitions are owned by lib/work-request/approval.
type WorkRequestStatus string

const (
	WRStatusDraft                  WorkRequestStatus = "Draft"
	WRStatusPendingManagerApproval WorkRequestStatus = "PendingManagerApproval"
	WRStatusPendingAdminApproval   WorkRequestStatus = "PendingAdminApproval"
	WRStatusApproved               WorkRequestStatus = "Approved"
	WRStatusRejected               WorkRequestStatus = "Rejected"
	WRStatusInProgress             WorkRequestStatus = "InProgress"
	WRStatusCompleted              WorkRequestStatus = "Completed"
)

func (s WorkRequestStatus) IsPending() bool {
	return s == WRStatusPendingManagerApproval || s == WRStatusPendingAdminApproval
}

func (s WorkRequestStatus) IsTerminal() bool {
	return s == WRStatusRejected || s == WRStatusCompleted
}

type WorkRequestType string

const (
	WRTypeMaintenance  WorkRequestType = "Maintenance"
	WRTypeInstallation WorkRequestType = "Installation"
	WRTypeInspection   WorkRequestType = "Inspection"
	WRTypeRepair       WorkRequestType = "Repair"
	WRTypeOther        WorkRequestType = "Other"
)

type WorkRequestPriority string

const (
	WRPriorityLow      WorkRequestPriority = "Low"
	WRPriorityMedium   WorkRequestPriority = "Medium"
	WRPriorityHigh     WorkRequestPriority = "High"
	WRPriorityCritical WorkRequestPriority = "Critical"
)

// ApprovalAction is a single workflow decision.
type ApprovalAction string

const (
	ApprovalActionSubmit      ApprovalAction = "Submit"
	ApprovalActionApprove     ApprovalAction = "Approve"
	ApprovalActionReject      ApprovalAction = "Reject"
	ApprovalActionEscalate    ApprovalAction = "Escalate"
	ApprovalActionAutoApprove ApprovalAction = "AutoApprove"
)

// ApprovalLevel is the stage in the approval chain responsible for a decision.
type ApprovalLevel string

const (
	ApprovalLevelManager ApprovalLevel = "Manager"
	ApprovalLevelAdmin   ApprovalLevel = "Admin"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusOnHold     ProjectStatus = "OnHold"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

type ProjectTaskStatus string

const (
	TaskStatusNotStarted ProjectTaskStatus = "NotStarted"
	TaskStatusInProgress ProjectTaskStatus = "InProgress"
	TaskStatusCompleted  ProjectTaskStatus = "Completed"
	TaskStatusOnHold     ProjectTaskStatus = "OnHold"
	TaskStatusCancelled  ProjectTaskStatus = "Cancelled"
)

type DailyReportStatus string

const (
	DRStatusDraft     DailyReportStatus = "Draft"
	DRStatusSubmitted DailyReportStatus = "Submitted"
	DRStatusApproved  DailyReportStatus = "Approved"
	DRStatusRejected  DailyReportStatus = "Rejected"
)

func (s DailyReportStatus) IsAllowChange(to DailyReportStatus) bool {
	switch s {
	case DRStatusDraft:
		return to == DRStatusSubmitted
	case DRStatusSubmitted:
		return to == DRStatusApproved || to == DRStatusRejected
	case DRStatusRejected:
		return to == DRStatusSubmitted
	}
	return false
}

// NotificationType enumerates every event the dispatcher can emit.
// lib/notification keeps the type-to-subject table; a test asserts the
// table covers every value listed here.
type NotificationType string

const (
	NotifyWorkRequestSubmitted NotificationType = "WorkRequestSubmitted"
	NotifyWorkRequestApproved  NotificationType = "WorkRequestApproved"
	NotifyWorkRequestRejected  NotificationType = "WorkRequestRejected"
	NotifyWorkRequestAssigned  NotificationType = "WorkRequestAssigned"
	NotifyWorkRequestCompleted NotificationType = "WorkRequestCompleted"
	NotifyWorkRequestEscalated NotificationType = "WorkRequestEscalated"
	NotifyWorkRequestDue       NotificationType = "WorkRequestDue"
	NotifyWorkRequestOverdue   NotificationType = "WorkRequestOverdue"
	NotifyApprovalRequired     NotificationType = "ApprovalRequired"
	NotifyApprovalReminder     NotificationType = "ApprovalReminder"

	NotifyProjectCreated       NotificationType = "ProjectCreated"
	NotifyProjectUpdated       NotificationType = "ProjectUpdated"
	NotifyProjectDeleted       NotificationType = "ProjectDeleted"
	NotifyProjectStatusChanged NotificationType = "ProjectStatusChanged"
	NotifyProjectLocation      NotificationType = "ProjectLocationUpdated"

	NotifyTaskCreated       NotificationType = "TaskCreated"
	NotifyTaskUpdated       NotificationType = "TaskUpdated"
	NotifyTaskDeleted       NotificationType = "TaskDeleted"
	NotifyTaskStatusChanged NotificationType = "TaskStatusChanged"

	NotifyDailyReportCreated       NotificationType = "DailyReportCreated"
	NotifyDailyReportUpdated       NotificationType = "DailyReportUpdated"
	NotifyDailyReportDeleted       NotificationType = "DailyReportDeleted"
	NotifyDailyReportStatusChanged NotificationType = "DailyReportStatusChange"

	NotifyUserCreated     NotificationType = "UserCreated"
	NotifyUserRoleChanged NotificationType = "UserRoleChanged"

	NotifyDashboardStats      NotificationType = "DashboardStatsUpdated"
	NotifySystemAnnouncement  NotificationType = "SystemAnnouncement"
	NotifyWaterFacilityUpdate NotificationType = "WaterFacilityUpdate"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "Pending"
	NotificationStatusSent    NotificationStatus = "Sent"
	NotificationStatusRead    NotificationStatus = "Read"
)

// RegionBucket is the geographic classification used for regional routing.
type RegionBucket string

const (
	RegionNorthern RegionBucket = "northern"
	RegionWestern  RegionBucket = "western"
	RegionCentral  RegionBucket = "central"
)
