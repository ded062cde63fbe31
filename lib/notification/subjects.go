package notification

import "solar-projects-backend/models"

// subjectTable gives every event type a human-readable subject for
// durable notifications and email fallbacks. A test asserts the table
// covers the full enum.
var subjectTable = map[models.NotificationType]string{
	models.NotifyWorkRequestSubmitted: "Work request submitted for approval",
	models.NotifyWorkRequestApproved:  "Work request approved",
	models.NotifyWorkRequestRejected:  "Work request rejected",
	models.NotifyWorkRequestAssigned:  "Work request assigned to you",
	models.NotifyWorkRequestCompleted: "Work request completed",
	models.NotifyWorkRequestEscalated: "Work request escalated",
	models.NotifyWorkRequestDue:       "Work request due soon",
	models.NotifyWorkRequestOverdue:   "Work request overdue",
	models.NotifyApprovalRequired:     "Your approval is required",
	models.NotifyApprovalReminder:     "Approval reminder",

	models.NotifyProjectCreated:       "Project created",
	models.NotifyProjectUpdated:       "Project updated",
	models.NotifyProjectDeleted:       "Project deleted",
	models.NotifyProjectStatusChanged: "Project status changed",
	models.NotifyProjectLocation:      "Project location updated",

	models.NotifyTaskCreated:       "Task created",
	models.NotifyTaskUpdated:       "Task updated",
	models.NotifyTaskDeleted:       "Task deleted",
	models.NotifyTaskStatusChanged: "Task status changed",

	models.NotifyDailyReportCreated:       "Daily report created",
	models.NotifyDailyReportUpdated:       "Daily report updated",
	models.NotifyDailyReportDeleted:       "Daily report deleted",
	models.NotifyDailyReportStatusChanged: "Daily report status changed",

	models.NotifyUserCreated:     "User account created",
	models.NotifyUserRoleChanged: "User role changed",

	models.NotifyDashboardStats:      "Dashboard statistics updated",
	models.NotifySystemAnnouncement:  "System announcement",
	models.NotifyWaterFacilityUpdate: "Water facility update",
}

// Subject returns the subject line for an event type, falling back to
// the raw type name for anything unknown.
func Subject(nt models.NotificationType) string {
	if s, ok := subjectTable[nt]; ok {
		return s
	}
	return string(nt)
}

// AllTypes lists every known event type, in declaration order.
func AllTypes() []models.NotificationType {
	return []models.NotificationType{
		models.NotifyWorkRequestSubmitted,
		models.NotifyWorkRequestApproved,
		models.NotifyWorkRequestRejected,
		models.NotifyWorkRequestAssigned,
		models.NotifyWorkRequestCompleted,
		models.NotifyWorkRequestEscalated,
		models.NotifyWorkRequestDue,
		models.NotifyWorkRequestOverdue,
		models.NotifyApprovalRequired,
		models.NotifyApprovalReminder,
		models.NotifyProjectCreated,
		models.NotifyProjectUpdated,
		models.NotifyProjectDeleted,
		models.NotifyProjectStatusChanged,
		models.NotifyProjectLocation,
		models.NotifyTaskCreated,
		models.NotifyTaskUpdated,
		models.NotifyTaskDeleted,
		models.NotifyTaskStatusChanged,
		models.NotifyDailyReportCreated,
		models.NotifyDailyReportUpdated,
		models.NotifyDailyReportDeleted,
		models.NotifyDailyReportStatusChanged,
		models.NotifyUserCreated,
		models.NotifyUserRoleChanged,
		models.NotifyDashboardStats,
		models.NotifySystemAnnouncement,
		models.NotifyWaterFacilityUpdate,
	}
}
