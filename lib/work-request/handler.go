package workrequest

import (
	"bytes"
	"time"

	log "github.com/sirupsen/logrus"

	"solar-projects-backend/db"
	pdfexport "solar-projects-backend/lib/export/pdf"
	xlsexport "solar-projects-backend/lib/export/xls"
	"solar-projects-backend/lib/notification"
	"solar-projects-backend/lib/notification/audience"
	projectstore "solar-projects-backend/lib/project/store"
	apperror "solar-projects-backend/lib/utils/app-error"
	workrequeststore "solar-projects-backend/lib/work-request/store"
	"solar-projects-backend/models"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(requesterID string, data workrequestapimodels.WorkRequestData) (id string, err error)
	Update(id string, data workrequestapimodels.WorkRequestData) error
	Delete(id string) error
	GetByID(id string) (*workrequestapimodels.WorkRequestView, error)
	GetList(filter workrequestapimodels.WorkRequestFilter) (list []workrequestapimodels.WorkRequestView, rowCount int64, err error)
	Assign(id, actorID, assigneeID string) error
	Start(id, actorID string) error
	Complete(id, actorID string, req workrequestapimodels.CompleteRequest) error
	ExportList(filter workrequestapimodels.WorkRequestFilter) (*bytes.Buffer, error)
	ExportListPDF(filter workrequestapimodels.WorkRequestFilter) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        workrequeststore.NewInstance(db.DB),
		projectStore: projectstore.NewInstance(db.DB),
	}
}

type impl struct {
	store        workrequeststore.Provider
	projectStore projectstore.Provider
}

func (i impl) Create(requesterID string, data workrequestapimodels.WorkRequestData) (string, error) {
	project, err := i.projectStore.GetByID(data.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apperror.NotFound("project not found")
	}
	now := time.Now()
	rec := dbmodels.WorkRequest{
		ProjectID:      data.ProjectID,
		Title:          data.Title,
		Description:    data.Description,
		Type:           data.Type,
		Priority:       data.Priority,
		Status:         models.WRStatusDraft,
		RequestedByID:  requesterID,
		RequestedDate:  &now,
		DueDate:        data.DueDate,
		Location:       data.Location,
		Notes:          data.Notes,
		EstimatedCost:  data.EstimatedCost,
		EstimatedHours: data.EstimatedHours,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.WithField("work_request_id", id).Info("work request created")
	return id, nil
}

// Update only touches draft requests. Anything already in the approval
// chain is immutable outside the approval engine.
func (i impl) Update(id string, data workrequestapimodels.WorkRequestData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("work request not found")
	}
	if rec.Status != models.WRStatusDraft {
		return apperror.InvalidState("work request in status %s cannot be edited", rec.Status)
	}
	updMap := map[string]interface{}{
		"title":           data.Title,
		"description":     data.Description,
		"type":            data.Type,
		"priority":        data.Priority,
		"due_date":        data.DueDate,
		"location":        data.Location,
		"notes":           data.Notes,
		"estimated_cost":  data.EstimatedCost,
		"estimated_hours": data.EstimatedHours,
	}
	updated, err := i.store.UpdateWithStatusGuard(id, models.WRStatusDraft, updMap)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.Conflict("work request was modified concurrently")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("work request not found")
	}
	if rec.Status.IsPending() {
		return apperror.InvalidState("work request with a pending approval cannot be deleted")
	}
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (*workrequestapimodels.WorkRequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("work request not found")
	}
	view := workrequestapimodels.ConvertToView(*rec)
	return &view, nil
}

func (i impl) GetList(filter workrequestapimodels.WorkRequestFilter) ([]workrequestapimodels.WorkRequestView, int64, error) {
	list, rowCount, err := i.store.GetList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]workrequestapimodels.WorkRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, workrequestapimodels.ConvertToView(rec))
	}
	return result, rowCount, nil
}

func (i impl) Assign(id, actorID, assigneeID string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("work request not found")
	}
	if rec.Status.IsTerminal() {
		return apperror.InvalidState("work request in status %s cannot be assigned", rec.Status)
	}
	err = i.store.Update(id, map[string]interface{}{
		"assigned_to_id": assigneeID,
	})
	if err != nil {
		return err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyWorkRequestAssigned,
			ProjectID:    rec.ProjectID,
			RecipientIDs: []string{assigneeID},
		},
		WorkRequestID: id,
		SenderID:      &actorID,
		Message:       rec.Title + " was assigned to you",
	})
	return nil
}

func (i impl) Start(id, actorID string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("work request not found")
	}
	if rec.Status != models.WRStatusApproved {
		return apperror.InvalidState("only approved work requests can be started")
	}
	now := time.Now()
	updated, err := i.store.UpdateWithStatusGuard(id, models.WRStatusApproved, map[string]interface{}{
		"status":     models.WRStatusInProgress,
		"started_at": now,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperror.Conflict("work request was modified concurrently")
	}
	return nil
}

func (i impl) Complete(id, actorID string, req workrequestapimodels.CompleteRequest) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("work request not found")
	}
	if rec.Status != models.WRStatusApproved && rec.Status != models.WRStatusInProgress {
		return apperror.InvalidState("work request in status %s cannot be completed", rec.Status)
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status":         models.WRStatusCompleted,
		"completed_date": now,
		"resolution":     req.Resolution,
	}
	if req.ActualCost != nil {
		updMap["actual_cost"] = *req.ActualCost
	}
	if req.ActualHours != nil {
		updMap["actual_hours"] = *req.ActualHours
	}
	updated, err := i.store.UpdateWithStatusGuard(id, rec.Status, updMap)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.Conflict("work request was modified concurrently")
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyWorkRequestCompleted,
			ProjectID:    rec.ProjectID,
			RecipientIDs: []string{rec.RequestedByID},
		},
		WorkRequestID: id,
		SenderID:      &actorID,
		Message:       rec.Title + " was completed",
	})
	return nil
}

// ExportList walks every page matching the filter and renders an xlsx
// workbook.
func (i impl) ExportList(filter workrequestapimodels.WorkRequestFilter) (*bytes.Buffer, error) {
	all, err := i.collectAll(filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportWorkRequestList(all)
}

func (i impl) ExportListPDF(filter workrequestapimodels.WorkRequestFilter) ([]byte, error) {
	all, err := i.collectAll(filter)
	if err != nil {
		return nil, err
	}
	return pdfexport.Instance.ExportWorkRequestList(all)
}

func (i impl) collectAll(filter workrequestapimodels.WorkRequestFilter) ([]dbmodels.WorkRequest, error) {
	filter.Limit = 100
	filter.Page = 1
	all := []dbmodels.WorkRequest{}
	for {
		list, rowCount, err := i.store.GetList(filter)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
		if len(list) == 0 || int64(len(all)) >= rowCount {
			break
		}
		filter.Page++
	}
	return all, nil
}

func (i impl) notify(ev notification.DispatchEvent) {
	if notification.Instance == nil {
		return
	}
	err := notification.Instance.Dispatch(ev)
	if err != nil {
		log.WithError(err).WithField("event", string(ev.Type)).Error("notification dispatch failed")
	}
}
