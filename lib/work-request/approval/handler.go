package approval

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"solar-projects-backend/config"
	"solar-projects-backend/db"
	"solar-projects-backend/lib/notification"
	"solar-projects-backend/lib/notification/audience"
	smtphandler "solar-projects-backend/lib/smtp"
	usersstore "solar-projects-backend/lib/users/store"
	apperror "solar-projects-backend/lib/utils/app-error"
	"solar-projects-backend/lib/utils/helpers"
	approvalstore "solar-projects-backend/lib/work-request/approval/store"
	workrequeststore "solar-projects-backend/lib/work-request/store"
	"solar-projects-backend/models"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
	dbmodels "solar-projects-backend/models/db"
)

// Provider owns every work request status transition. Nothing else in
// the codebase writes the status column.
type Provider interface {
	SubmitForApproval(workRequestID, requesterID string, req workrequestapimodels.SubmitRequest) (*workrequestapimodels.WorkRequestView, error)
	ProcessApproval(workRequestID, approverID string, role models.UserRole, req workrequestapimodels.ApprovalRequest) (*workrequestapimodels.WorkRequestView, error)
	BulkApproval(approverID string, role models.UserRole, req workrequestapimodels.BulkApprovalRequest) workrequestapimodels.BulkApprovalResult
	GetApprovalStatus(workRequestID string) (*workrequestapimodels.ApprovalStatusView, error)
	GetApprovalHistory(workRequestID string) ([]workrequestapimodels.ApprovalRecordView, error)
	GetPendingApprovals(approverID string) ([]workrequestapimodels.PendingApprovalView, error)
	GetApprovalStatistics(since *time.Time) (*workrequestapimodels.ApprovalStatistics, error)
	SendApprovalReminders() (int, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		wrStore:       workrequeststore.NewInstance(db.DB),
		approvalStore: approvalstore.NewInstance(db.DB),
		usersStore:    usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	wrStore       workrequeststore.Provider
	approvalStore approvalstore.Provider
	usersStore    usersstore.Provider
}

func (i impl) SubmitForApproval(workRequestID, requesterID string, req workrequestapimodels.SubmitRequest) (*workrequestapimodels.WorkRequestView, error) {
	rec, err := i.wrStore.GetByID(workRequestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("work request not found")
	}
	if rec.Status != models.WRStatusDraft {
		return nil, apperror.InvalidState("work request in status %s cannot be submitted", rec.Status)
	}

	requiresManager, requiresAdmin := i.requiredLevels(*rec)
	if req.RequiresAdminApproval {
		// The submitter can raise the bar, never lower it.
		requiresAdmin = true
		requiresManager = true
	}
	now := time.Now()

	if !requiresManager && !requiresAdmin {
		return i.autoApprove(*rec, requesterID, req.Comments, now)
	}

	updMap := map[string]interface{}{
		"submitted_for_approval_date": now,
		"requires_manager_approval":   requiresManager,
		"requires_admin_approval":     requiresAdmin,
	}
	var nextStatus models.WorkRequestStatus
	var level models.ApprovalLevel
	var approverID string
	if requiresManager {
		nextStatus = models.WRStatusPendingManagerApproval
		level = models.ApprovalLevelManager
		if req.PreferredManagerID != nil && *req.PreferredManagerID != "" {
			approverID, err = i.validatePreferredManager(*req.PreferredManagerID)
		} else {
			approverID, err = i.pickManagerApprover(*rec)
		}
		if err != nil {
			return nil, err
		}
		updMap["manager_approver_id"] = approverID
	} else {
		nextStatus = models.WRStatusPendingAdminApproval
		level = models.ApprovalLevelAdmin
		approverID, err = i.pickAdminApprover()
		if err != nil {
			return nil, err
		}
		updMap["admin_approver_id"] = approverID
	}
	updMap["status"] = nextStatus

	updated, err := i.wrStore.UpdateWithStatusGuard(workRequestID, models.WRStatusDraft, updMap)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.Conflict("work request was modified concurrently")
	}

	_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
		WorkRequestID:  workRequestID,
		ApproverID:     approverID,
		Action:         models.ApprovalActionSubmit,
		Level:          level,
		PreviousStatus: models.WRStatusDraft,
		NewStatus:      nextStatus,
		Comments:       req.Comments,
		IsActive:       true,
	})
	if err != nil {
		return nil, err
	}

	fresh, err := i.reload(workRequestID)
	if err != nil {
		return nil, err
	}
	view := workrequestapimodels.ConvertToView(*fresh)

	i.dispatch(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyWorkRequestSubmitted,
			ProjectID:    fresh.ProjectID,
			RecipientIDs: []string{requesterID},
		},
		WorkRequestID: workRequestID,
		SenderID:      &requesterID,
		Message:       fresh.Title + " was submitted for approval",
		Payload:       view,
	})
	i.dispatch(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyApprovalRequired,
			ProjectID:    fresh.ProjectID,
			RecipientIDs: []string{approverID},
		},
		WorkRequestID: workRequestID,
		SenderID:      &requesterID,
		Message:       fresh.Title + " awaits your approval",
		Payload:       view,
	})
	return &view, nil
}

// requiredLevels derives the approval chain from the estimate. Both
// levels off means the request is cheap enough to auto-approve.
func (i impl) requiredLevels(rec dbmodels.WorkRequest) (manager, admin bool) {
	cost := helpers.Float64OrZero(rec.EstimatedCost)
	hours := helpers.Float64OrZero(rec.EstimatedHours)
	conf := config.Conf.Approval
	manager = cost > conf.AutoApproveCostLimit || hours > conf.AutoApproveHoursLimit
	admin = cost > conf.AdminApprovalCostLimit
	if admin {
		manager = true
	}
	return manager, admin
}

func (i impl) autoApprove(rec dbmodels.WorkRequest, requesterID, comments string, now time.Time) (*workrequestapimodels.WorkRequestView, error) {
	updated, err := i.wrStore.UpdateWithStatusGuard(rec.ID, models.WRStatusDraft, map[string]interface{}{
		"status":                      models.WRStatusApproved,
		"submitted_for_approval_date": now,
		"requires_manager_approval":   false,
		"requires_admin_approval":     false,
		"is_auto_approved":            true,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.Conflict("work request was modified concurrently")
	}
	_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
		WorkRequestID:  rec.ID,
		ApproverID:     requesterID,
		Action:         models.ApprovalActionAutoApprove,
		Level:          models.ApprovalLevelManager,
		PreviousStatus: models.WRStatusDraft,
		NewStatus:      models.WRStatusApproved,
		Comments:       comments,
		ProcessedAt:    &now,
		IsActive:       false,
	})
	if err != nil {
		return nil, err
	}
	fresh, err := i.reload(rec.ID)
	if err != nil {
		return nil, err
	}
	view := workrequestapimodels.ConvertToView(*fresh)
	i.dispatch(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyWorkRequestApproved,
			ProjectID:    fresh.ProjectID,
			RecipientIDs: []string{requesterID},
		},
		WorkRequestID: rec.ID,
		Message:       fresh.Title + " was approved automatically",
		Payload:       view,
	})
	return &view, nil
}

func (i impl) ProcessApproval(workRequestID, approverID string, role models.UserRole, req workrequestapimodels.ApprovalRequest) (*workrequestapimodels.WorkRequestView, error) {
	rec, err := i.wrStore.GetByID(workRequestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("work request not found")
	}
	level, pending := rec.CurrentApprovalLevel()
	if !pending {
		return nil, apperror.InvalidState("work request in status %s has no pending approval", rec.Status)
	}
	assigned := rec.CurrentApproverID()
	isAssigned := assigned != nil && *assigned == approverID
	if !isAssigned && !role.CanApprove(level) {
		return nil, apperror.Validation("user is not allowed to decide %s approvals", level)
	}

	switch models.ApprovalAction(req.Action) {
	case models.ApprovalActionApprove:
		return i.approve(*rec, level, approverID, req)
	case models.ApprovalActionReject:
		return i.reject(*rec, level, approverID, req)
	case models.ApprovalActionEscalate:
		return i.escalate(*rec, level, approverID, req)
	}
	return nil, apperror.Validation("unknown approval action %q", req.Action)
}

func (i impl) approve(rec dbmodels.WorkRequest, level models.ApprovalLevel, approverID string, req workrequestapimodels.ApprovalRequest) (*workrequestapimodels.WorkRequestView, error) {
	now := time.Now()
	updMap := map[string]interface{}{}
	var nextStatus models.WorkRequestStatus
	var nextApproverID string

	if level == models.ApprovalLevelManager {
		updMap["manager_approver_id"] = approverID
		updMap["manager_approval_date"] = now
		updMap["manager_comments"] = req.Comments
		if rec.RequiresAdminApproval {
			nextStatus = models.WRStatusPendingAdminApproval
			adminID, err := i.pickAdminApprover()
			if err != nil {
				return nil, err
			}
			nextApproverID = adminID
			updMap["admin_approver_id"] = adminID
		} else {
			nextStatus = models.WRStatusApproved
		}
	} else {
		updMap["admin_approver_id"] = approverID
		updMap["admin_approval_date"] = now
		updMap["admin_comments"] = req.Comments
		nextStatus = models.WRStatusApproved
	}
	updMap["status"] = nextStatus

	updated, err := i.wrStore.UpdateWithStatusGuard(rec.ID, rec.Status, updMap)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.Conflict("approval decided concurrently")
	}

	err = i.approvalStore.CloseActiveRecords(rec.ID)
	if err != nil {
		return nil, err
	}
	_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
		WorkRequestID:  rec.ID,
		ApproverID:     approverID,
		Action:         models.ApprovalActionApprove,
		Level:          level,
		PreviousStatus: rec.Status,
		NewStatus:      nextStatus,
		Comments:       req.Comments,
		ProcessedAt:    &now,
		IsActive:       false,
	})
	if err != nil {
		return nil, err
	}
	if nextStatus == models.WRStatusPendingAdminApproval {
		_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
			WorkRequestID:  rec.ID,
			ApproverID:     nextApproverID,
			Action:         models.ApprovalActionSubmit,
			Level:          models.ApprovalLevelAdmin,
			PreviousStatus: rec.Status,
			NewStatus:      nextStatus,
			IsActive:       true,
		})
		if err != nil {
			return nil, err
		}
	}

	fresh, err := i.reload(rec.ID)
	if err != nil {
		return nil, err
	}
	view := workrequestapimodels.ConvertToView(*fresh)

	if nextStatus == models.WRStatusApproved {
		recipients := []string{fresh.RequestedByID}
		if fresh.AssignedToID != nil {
			recipients = append(recipients, *fresh.AssignedToID)
		}
		i.dispatch(notification.DispatchEvent{
			Event: audience.Event{
				Type:         models.NotifyWorkRequestApproved,
				ProjectID:    fresh.ProjectID,
				RecipientIDs: recipients,
			},
			WorkRequestID: rec.ID,
			SenderID:      &approverID,
			Message:       fresh.Title + " was approved",
			Payload:       view,
		})
	} else {
		i.dispatch(notification.DispatchEvent{
			Event: audience.Event{
				Type:         models.NotifyApprovalRequired,
				ProjectID:    fresh.ProjectID,
				RecipientIDs: []string{nextApproverID},
			},
			WorkRequestID: rec.ID,
			SenderID:      &approverID,
			Message:       fresh.Title + " awaits administrator approval",
			Payload:       view,
		})
	}
	return &view, nil
}

func (i impl) reject(rec dbmodels.WorkRequest, level models.ApprovalLevel, approverID string, req workrequestapimodels.ApprovalRequest) (*workrequestapimodels.WorkRequestView, error) {
	now := time.Now()
	updMap := map[string]interface{}{
		"status":           models.WRStatusRejected,
		"rejection_reason": req.RejectionReason,
	}
	if level == models.ApprovalLevelManager {
		updMap["manager_approver_id"] = approverID
		updMap["manager_comments"] = req.Comments
	} else {
		updMap["admin_approver_id"] = approverID
		updMap["admin_comments"] = req.Comments
	}
	updated, err := i.wrStore.UpdateWithStatusGuard(rec.ID, rec.Status, updMap)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.Conflict("approval decided concurrently")
	}
	err = i.approvalStore.CloseActiveRecords(rec.ID)
	if err != nil {
		return nil, err
	}
	_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
		WorkRequestID:   rec.ID,
		ApproverID:      approverID,
		Action:          models.ApprovalActionReject,
		Level:           level,
		PreviousStatus:  rec.Status,
		NewStatus:       models.WRStatusRejected,
		Comments:        req.Comments,
		RejectionReason: req.RejectionReason,
		ProcessedAt:     &now,
		IsActive:        false,
	})
	if err != nil {
		return nil, err
	}
	fresh, err := i.reload(rec.ID)
	if err != nil {
		return nil, err
	}
	view := workrequestapimodels.ConvertToView(*fresh)
	i.dispatch(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyWorkRequestRejected,
			ProjectID:    fresh.ProjectID,
			RecipientIDs: []string{fresh.RequestedByID},
		},
		WorkRequestID: rec.ID,
		SenderID:      &approverID,
		Message:       fresh.Title + " was rejected: " + req.RejectionReason,
		Payload:       view,
	})
	return &view, nil
}

// escalate keeps the pending status and hands the open slot to another
// approver of the same level.
func (i impl) escalate(rec dbmodels.WorkRequest, level models.ApprovalLevel, approverID string, req workrequestapimodels.ApprovalRequest) (*workrequestapimodels.WorkRequestView, error) {
	if req.EscalateToID == nil || *req.EscalateToID == "" {
		return nil, apperror.Validation("escalation target is required")
	}
	target, err := i.usersStore.GetByID(*req.EscalateToID)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.IsActive {
		return nil, apperror.Validation("escalation target not found")
	}
	if !target.Role.CanApprove(level) {
		return nil, apperror.Validation("escalation target cannot decide %s approvals", level)
	}

	now := time.Now()
	updMap := map[string]interface{}{}
	approverColumn := "manager_approver_id"
	if level == models.ApprovalLevelAdmin {
		approverColumn = "admin_approver_id"
	}
	updMap[approverColumn] = *req.EscalateToID

	// Escalation keeps the status, so the guard must also pin the
	// current approver or two concurrent escalations would both pass.
	currentApprover := ""
	if assigned := rec.CurrentApproverID(); assigned != nil {
		currentApprover = *assigned
	}
	updated, err := i.wrStore.UpdateWithApproverGuard(rec.ID, rec.Status, approverColumn, currentApprover, updMap)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.Conflict("approval decided concurrently")
	}
	err = i.approvalStore.CloseActiveRecords(rec.ID)
	if err != nil {
		return nil, err
	}
	_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
		WorkRequestID:    rec.ID,
		ApproverID:       approverID,
		Action:           models.ApprovalActionEscalate,
		Level:            level,
		PreviousStatus:   rec.Status,
		NewStatus:        rec.Status,
		Comments:         req.Comments,
		EscalationReason: req.EscalationReason,
		EscalationDate:   &now,
		ProcessedAt:      &now,
		IsActive:         false,
	})
	if err != nil {
		return nil, err
	}
	_, err = i.approvalStore.CreateRecord(dbmodels.WorkRequestApproval{
		WorkRequestID:  rec.ID,
		ApproverID:     *req.EscalateToID,
		Action:         models.ApprovalActionSubmit,
		Level:          level,
		PreviousStatus: rec.Status,
		NewStatus:      rec.Status,
		IsActive:       true,
	})
	if err != nil {
		return nil, err
	}
	fresh, err := i.reload(rec.ID)
	if err != nil {
		return nil, err
	}
	view := workrequestapimodels.ConvertToView(*fresh)
	i.dispatch(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyWorkRequestEscalated,
			ProjectID:    fresh.ProjectID,
			RecipientIDs: []string{*req.EscalateToID, fresh.RequestedByID},
		},
		WorkRequestID: rec.ID,
		SenderID:      &approverID,
		Message:       fresh.Title + " was escalated: " + req.EscalationReason,
		Payload:       view,
	})
	return &view, nil
}

// BulkApproval decides each request independently. A failed item never
// rolls back the ones already decided.
func (i impl) BulkApproval(approverID string, role models.UserRole, req workrequestapimodels.BulkApprovalRequest) workrequestapimodels.BulkApprovalResult {
	result := workrequestapimodels.BulkApprovalResult{
		Items: make([]workrequestapimodels.BulkApprovalItemResult, 0, len(req.WorkRequestIDs)),
	}
	for _, id := range req.WorkRequestIDs {
		result.Processed++
		item := workrequestapimodels.BulkApprovalItemResult{WorkRequestID: id}
		_, err := i.ProcessApproval(id, approverID, role, req.ApprovalRequest)
		if err != nil {
			item.Error = err.Error()
			result.Failed++
		} else {
			item.Success = true
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
	}
	return result
}

func (i impl) GetApprovalStatus(workRequestID string) (*workrequestapimodels.ApprovalStatusView, error) {
	rec, err := i.wrStore.GetByID(workRequestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("work request not found")
	}
	view := workrequestapimodels.ApprovalStatusView{
		WorkRequestID:           rec.ID,
		Status:                  rec.Status,
		CurrentApproverID:       rec.CurrentApproverID(),
		RequiresManagerApproval: rec.RequiresManagerApproval,
		RequiresAdminApproval:   rec.RequiresAdminApproval,
		IsAutoApproved:          rec.IsAutoApproved,
		SubmittedAt:             rec.SubmittedForApprovalDate,
		DaysPending:             rec.DaysPendingApproval(time.Now()),
	}
	if level, ok := rec.CurrentApprovalLevel(); ok {
		view.CurrentLevel = &level
	}
	if view.CurrentApproverID != nil {
		view.CurrentApproverName = i.approverName(*view.CurrentApproverID)
	}
	// While the manager level is pending the admin level is next in the
	// chain. The concrete admin is only assigned on manager approval,
	// until then the already recorded one (if any) is the best answer.
	if rec.Status == models.WRStatusPendingManagerApproval && rec.RequiresAdminApproval && rec.AdminApproverID != nil {
		view.NextApproverID = rec.AdminApproverID
		view.NextApproverName = i.approverName(*rec.AdminApproverID)
	}
	return &view, nil
}

// approverName is best effort, a lookup failure never fails the status
// call.
func (i impl) approverName(userID string) string {
	user, err := i.usersStore.GetByID(userID)
	if err != nil || user == nil {
		return ""
	}
	return user.GetDisplayName()
}

func (i impl) GetApprovalHistory(workRequestID string) ([]workrequestapimodels.ApprovalRecordView, error) {
	rec, err := i.wrStore.GetByID(workRequestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("work request not found")
	}
	history, err := i.approvalStore.GetHistory(workRequestID)
	if err != nil {
		return nil, err
	}
	result := make([]workrequestapimodels.ApprovalRecordView, 0, len(history))
	for _, item := range history {
		result = append(result, workrequestapimodels.ConvertApprovalToView(item))
	}
	return result, nil
}

func (i impl) GetPendingApprovals(approverID string) ([]workrequestapimodels.PendingApprovalView, error) {
	list, err := i.wrStore.GetPendingByApprover(approverID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	result := make([]workrequestapimodels.PendingApprovalView, 0, len(list))
	for _, rec := range list {
		level, _ := rec.CurrentApprovalLevel()
		result = append(result, workrequestapimodels.PendingApprovalView{
			WorkRequestView: workrequestapimodels.ConvertToView(rec),
			Level:           level,
			DaysPending:     rec.DaysPendingApproval(now),
		})
	}
	return result, nil
}

func (i impl) GetApprovalStatistics(since *time.Time) (*workrequestapimodels.ApprovalStatistics, error) {
	stats, err := i.approvalStore.GetStatistics(since)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SendApprovalReminders pings the current approver of every request
// pending longer than the configured threshold.
func (i impl) SendApprovalReminders() (int, error) {
	list, err := i.wrStore.GetPendingOlderThan(config.Conf.Approval.ReminderAfterHours)
	if err != nil {
		return 0, err
	}
	sent := 0
	now := time.Now()
	for _, rec := range list {
		approverID := rec.CurrentApproverID()
		if approverID == nil {
			continue
		}
		view := workrequestapimodels.ConvertToView(rec)
		message := rec.Title + " has been pending approval for " + durationDays(rec, now)
		i.dispatch(notification.DispatchEvent{
			Event: audience.Event{
				Type:         models.NotifyApprovalReminder,
				ProjectID:    rec.ProjectID,
				RecipientIDs: []string{*approverID},
			},
			WorkRequestID: rec.ID,
			Message:       message,
			Payload:       view,
		})
		i.sendReminderEmail(*approverID, message)
		sent++
	}
	return sent, nil
}

func (i impl) sendReminderEmail(approverID, message string) {
	if smtphandler.Instance == nil {
		return
	}
	approver, err := i.usersStore.GetByID(approverID)
	if err != nil || approver == nil || approver.Email == "" {
		return
	}
	err = smtphandler.Instance.SendEMail(approver.Email, message, "Approval reminder")
	if err != nil {
		log.WithError(err).WithField("approver_id", approverID).Error("reminder email failed")
	}
}

func durationDays(rec dbmodels.WorkRequest, now time.Time) string {
	days := rec.DaysPendingApproval(now)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func (i impl) pickManagerApprover(rec dbmodels.WorkRequest) (string, error) {
	if rec.Project != nil && rec.Project.ProjectManagerID != nil {
		return *rec.Project.ProjectManagerID, nil
	}
	managers, err := i.usersStore.GetActiveByRole(models.UserRoleManager)
	if err != nil {
		return "", err
	}
	if len(managers) == 0 {
		return "", apperror.InvalidState("no active manager available for approval")
	}
	return managers[0].ID, nil
}

func (i impl) validatePreferredManager(userID string) (string, error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", apperror.Validation("preferred manager not found")
	}
	if !user.Role.CanApprove(models.ApprovalLevelManager) {
		return "", apperror.Validation("preferred manager cannot decide manager approvals")
	}
	return user.ID, nil
}

func (i impl) pickAdminApprover() (string, error) {
	admins, err := i.usersStore.GetActiveByRole(models.UserRoleAdmin)
	if err != nil {
		return "", err
	}
	if len(admins) == 0 {
		return "", apperror.InvalidState("no active administrator available for approval")
	}
	return admins[0].ID, nil
}

func (i impl) reload(workRequestID string) (*dbmodels.WorkRequest, error) {
	fresh, err := i.wrStore.GetByID(workRequestID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, apperror.NotFound("work request not found")
	}
	return fresh, nil
}

// dispatch fires the event after the transition committed. Delivery
// problems are logged and never unwind the decision.
func (i impl) dispatch(ev notification.DispatchEvent) {
	if notification.Instance == nil {
		return
	}
	err := notification.Instance.Dispatch(ev)
	if err != nil {
		log.WithError(err).WithField("event", string(ev.Type)).Error("notification dispatch failed")
	}
}
