package dailyreport

import (
	"bytes"
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"solar-projects-backend/db"
	dailyreportstore "solar-projects-backend/lib/daily-report/store"
	pdfexport "solar-projects-backend/lib/export/pdf"
	xlsexport "solar-projects-backend/lib/export/xls"
	filestorage "solar-projects-backend/lib/file-storage"
	"solar-projects-backend/lib/notification"
	"solar-projects-backend/lib/notification/audience"
	projectstore "solar-projects-backend/lib/project/store"
	apperror "solar-projects-backend/lib/utils/app-error"
	"solar-projects-backend/models"
	dailyreportapimodels "solar-projects-backend/models/api/daily-report"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(reporterID string, data dailyreportapimodels.DailyReportData) (id string, err error)
	Update(id, actorID string, data dailyreportapimodels.DailyReportData) error
	Delete(id string) error
	GetByID(id string) (*dailyreportapimodels.DailyReportView, error)
	GetList(filter dailyreportapimodels.DailyReportFilter) (list []dailyreportapimodels.DailyReportView, rowCount int64, err error)
	ExportList(filter dailyreportapimodels.DailyReportFilter) (*bytes.Buffer, error)
	ExportListPDF(filter dailyreportapimodels.DailyReportFilter) ([]byte, error)

	Submit(id, actorID string) error
	Approve(id, approverID string) error
	Reject(id, approverID, reason string) error
	BulkSetStatus(approverID string, req dailyreportapimodels.BulkStatusRequest) (succeeded int, failed int)

	AddAttachment(ctx context.Context, reportID, uploaderID, fileName, contentType string, file []byte) (id string, err error)
	GetAttachment(ctx context.Context, attachmentID string) (fileName string, data []byte, err error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        dailyreportstore.NewInstance(db.DB),
		projectStore: projectstore.NewInstance(db.DB),
	}
}

type impl struct {
	store        dailyreportstore.Provider
	projectStore projectstore.Provider
}

func (i impl) Create(reporterID string, data dailyreportapimodels.DailyReportData) (string, error) {
	project, err := i.projectStore.GetByID(data.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apperror.NotFound("project not found")
	}
	reportDate := time.Now()
	if data.ReportDate != nil {
		reportDate = *data.ReportDate
	}
	rec := dbmodels.DailyReport{
		ProjectID:         data.ProjectID,
		ReporterID:        reporterID,
		ReportDate:        reportDate,
		Status:            models.DRStatusDraft,
		WeatherCondition:  data.WeatherCondition,
		TemperatureC:      data.TemperatureC,
		PersonnelOnSite:   data.PersonnelOnSite,
		WorkSummary:       data.WorkSummary,
		IssuesEncountered: data.IssuesEncountered,
		SafetyNotes:       data.SafetyNotes,
		HoursWorked:       data.HoursWorked,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyDailyReportCreated,
			ProjectID: data.ProjectID,
		},
		Payload: map[string]interface{}{"report_id": id, "project_id": data.ProjectID},
	})
	return id, nil
}

// Update is limited to the reporter's own unsubmitted reports.
func (i impl) Update(id, actorID string, data dailyreportapimodels.DailyReportData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("daily report not found")
	}
	if rec.ReporterID != actorID {
		return apperror.Validation("only the reporter can edit the report")
	}
	if rec.Status != models.DRStatusDraft && rec.Status != models.DRStatusRejected {
		return apperror.InvalidState("daily report in status %s cannot be edited", rec.Status)
	}
	err = i.store.Update(id, map[string]interface{}{
		"weather_condition":  data.WeatherCondition,
		"temperature_c":      data.TemperatureC,
		"personnel_on_site":  data.PersonnelOnSite,
		"work_summary":       data.WorkSummary,
		"issues_encountered": data.IssuesEncountered,
		"safety_notes":       data.SafetyNotes,
		"hours_worked":       data.HoursWorked,
	})
	if err != nil {
		return err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyDailyReportUpdated,
			ProjectID: rec.ProjectID,
		},
		Payload: map[string]interface{}{"report_id": id},
	})
	return nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("daily report not found")
	}
	if rec.Status == models.DRStatusApproved {
		return apperror.InvalidState("approved daily reports cannot be deleted")
	}
	err = i.store.Delete(id)
	if err != nil {
		return err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyDailyReportDeleted,
			ProjectID: rec.ProjectID,
		},
		Payload: map[string]interface{}{"report_id": id},
	})
	return nil
}

func (i impl) GetByID(id string) (*dailyreportapimodels.DailyReportView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("daily report not found")
	}
	view := dailyreportapimodels.ConvertToView(*rec)
	return &view, nil
}

func (i impl) GetList(filter dailyreportapimodels.DailyReportFilter) ([]dailyreportapimodels.DailyReportView, int64, error) {
	list, rowCount, err := i.store.GetList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dailyreportapimodels.DailyReportView, 0, len(list))
	for _, rec := range list {
		result = append(result, dailyreportapimodels.ConvertToView(rec))
	}
	return result, rowCount, nil
}

func (i impl) ExportList(filter dailyreportapimodels.DailyReportFilter) (*bytes.Buffer, error) {
	all, err := i.collectAll(filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportDailyReportList(all)
}

func (i impl) ExportListPDF(filter dailyreportapimodels.DailyReportFilter) ([]byte, error) {
	all, err := i.collectAll(filter)
	if err != nil {
		return nil, err
	}
	return pdfexport.Instance.ExportDailyReportList(all)
}

func (i impl) collectAll(filter dailyreportapimodels.DailyReportFilter) ([]dbmodels.DailyReport, error) {
	filter.Limit = 100
	filter.Page = 1
	all := []dbmodels.DailyReport{}
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

func (i impl) Submit(id, actorID string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("daily report not found")
	}
	if rec.ReporterID != actorID {
		return apperror.Validation("only the reporter can submit the report")
	}
	if !rec.Status.IsAllowChange(models.DRStatusSubmitted) {
		return apperror.InvalidState("daily report in status %s cannot be submitted", rec.Status)
	}
	now := time.Now()
	updated, err := i.store.UpdateWithStatusGuard(id, rec.Status, map[string]interface{}{
		"status":           models.DRStatusSubmitted,
		"submitted_at":     now,
		"rejection_reason": "",
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperror.Conflict("daily report was modified concurrently")
	}
	i.notifyStatus(*rec, models.DRStatusSubmitted)
	return nil
}

func (i impl) Approve(id, approverID string) error {
	return i.decide(id, approverID, models.DRStatusApproved, "")
}

func (i impl) Reject(id, approverID, reason string) error {
	if reason == "" {
		return apperror.Validation("rejection reason is required")
	}
	return i.decide(id, approverID, models.DRStatusRejected, reason)
}

func (i impl) decide(id, approverID string, to models.DailyReportStatus, reason string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("daily report not found")
	}
	if !rec.Status.IsAllowChange(to) {
		return apperror.InvalidState("daily report in status %s cannot move to %s", rec.Status, to)
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status":      to,
		"approver_id": approverID,
	}
	if to == models.DRStatusApproved {
		updMap["approved_at"] = now
	} else {
		updMap["rejection_reason"] = reason
	}
	updated, err := i.store.UpdateWithStatusGuard(id, rec.Status, updMap)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.Conflict("daily report was decided concurrently")
	}
	i.notifyStatus(*rec, to)
	return nil
}

// BulkSetStatus decides each report independently, mirroring bulk
// approval semantics for work requests.
func (i impl) BulkSetStatus(approverID string, req dailyreportapimodels.BulkStatusRequest) (succeeded, failed int) {
	for _, id := range req.ReportIDs {
		var err error
		if req.Status == models.DRStatusApproved {
			err = i.Approve(id, approverID)
		} else {
			err = i.Reject(id, approverID, req.Reason)
		}
		if err != nil {
			log.WithError(err).WithField("report_id", id).Warn("bulk status change skipped report")
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

func (i impl) AddAttachment(ctx context.Context, reportID, uploaderID, fileName, contentType string, file []byte) (string, error) {
	rec, err := i.store.GetByID(reportID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", apperror.NotFound("daily report not found")
	}
	if len(file) == 0 {
		return "", apperror.Validation("attachment is empty")
	}
	storagePath, err := filestorage.Instance.UploadAttachment(ctx, reportID, fileName, file)
	if err != nil {
		return "", err
	}
	return i.store.AddAttachment(dbmodels.DailyReportAttachment{
		DailyReportID: reportID,
		FileName:      fileName,
		StoragePath:   storagePath,
		ContentType:   contentType,
		FileSize:      int64(len(file)),
		UploadedByID:  uploaderID,
	})
}

func (i impl) GetAttachment(ctx context.Context, attachmentID string) (string, []byte, error) {
	rec, err := i.store.GetAttachment(attachmentID)
	if err != nil {
		return "", nil, err
	}
	if rec == nil {
		return "", nil, apperror.NotFound("attachment not found")
	}
	data, err := filestorage.Instance.GetAttachment(ctx, rec.StoragePath)
	if err != nil {
		return "", nil, err
	}
	return rec.FileName, data, nil
}

func (i impl) DeleteAttachment(ctx context.Context, attachmentID string) error {
	rec, err := i.store.GetAttachment(attachmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("attachment not found")
	}
	err = filestorage.Instance.DeleteAttachment(ctx, rec.StoragePath)
	if err != nil {
		return err
	}
	return i.store.DeleteAttachment(attachmentID)
}

func (i impl) notifyStatus(rec dbmodels.DailyReport, to models.DailyReportStatus) {
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:         models.NotifyDailyReportStatusChanged,
			ProjectID:    rec.ProjectID,
			RecipientIDs: []string{rec.ReporterID},
		},
		Payload: map[string]interface{}{"report_id": rec.ID, "status": to},
	})
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
