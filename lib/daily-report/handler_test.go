package dailyreport

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperror "solar-projects-backend/lib/utils/app-error"
	"solar-projects-backend/models"
	dailyreportapimodels "solar-projects-backend/models/api/daily-report"
	projectapimodels "solar-projects-backend/models/api/project"
	dbmodels "solar-projects-backend/models/db"
)

type fakeReportStore struct {
	recs   map[string]*dbmodels.DailyReport
	nextID int
}

func (f *fakeReportStore) Create(rec dbmodels.DailyReport) (string, error) {
	f.nextID++
	rec.ID = "dr" + string(rune('0'+f.nextID))
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeReportStore) Update(id string, updMap map[string]interface{}) error {
	if rec, ok := f.recs[id]; ok {
		applyReportUpdates(rec, updMap)
	}
	return nil
}

func (f *fakeReportStore) UpdateWithStatusGuard(id string, expected models.DailyReportStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.recs[id]
	if !ok || rec.Status != expected {
		return false, nil
	}
	applyReportUpdates(rec, updMap)
	return true, nil
}

func (f *fakeReportStore) Delete(id string) error {
	delete(f.recs, id)
	return nil
}

func (f *fakeReportStore) GetByID(id string) (*dbmodels.DailyReport, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeReportStore) GetList(filter dailyreportapimodels.DailyReportFilter) ([]dbmodels.DailyReport, int64, error) {
	return nil, 0, nil
}

func (f *fakeReportStore) CountByStatus(statuses []models.DailyReportStatus) (int64, error) {
	return 0, nil
}

func (f *fakeReportStore) AddAttachment(rec dbmodels.DailyReportAttachment) (string, error) {
	return "", nil
}

func (f *fakeReportStore) GetAttachment(id string) (*dbmodels.DailyReportAttachment, error) {
	return nil, nil
}

func (f *fakeReportStore) DeleteAttachment(id string) error {
	return nil
}

func applyReportUpdates(rec *dbmodels.DailyReport, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.DailyReportStatus)
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		case "approver_id":
			id := value.(string)
			rec.ApproverID = &id
		case "work_summary":
			rec.WorkSummary = value.(string)
		case "hours_worked":
			rec.HoursWorked = value.(float64)
		}
	}
}

type fakeProjectStore struct {
	projects map[string]*dbmodels.Project
}

func (f *fakeProjectStore) Create(rec dbmodels.Project) (string, error) {
	f.projects[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeProjectStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeProjectStore) Delete(id string) error {
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) GetByID(id string) (*dbmodels.Project, error) {
	rec, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeProjectStore) GetList(filter projectapimodels.ProjectFilter) ([]dbmodels.Project, int64, error) {
	return nil, 0, nil
}

func (f *fakeProjectStore) GetAllWithCoordinates() ([]dbmodels.Project, error) {
	return nil, nil
}

func (f *fakeProjectStore) CountByStatus(statuses []models.ProjectStatus) (int64, error) {
	return 0, nil
}

func newReportHandler() (impl, *fakeReportStore) {
	store := &fakeReportStore{recs: map[string]*dbmodels.DailyReport{}}
	projectStore := &fakeProjectStore{projects: map[string]*dbmodels.Project{
		"p1": {BaseModel: dbmodels.BaseModel{ID: "p1"}, ProjectName: "Rooftop A"},
	}}
	return impl{store: store, projectStore: projectStore}, store
}

func report(id, reporterID string, status models.DailyReportStatus) *dbmodels.DailyReport {
	return &dbmodels.DailyReport{
		BaseModel:  dbmodels.BaseModel{ID: id},
		ProjectID:  "p1",
		ReporterID: reporterID,
		Status:     status,
	}
}

func TestDailyReportWorkflow(t *testing.T) {
	t.Run(`create requires an existing project`, func(t *testing.T) {
		handler, _ := newReportHandler()
		_, err := handler.Create("u1", dailyreportapimodels.DailyReportData{ProjectID: "missing"})
		require.True(t, apperror.IsKind(err, apperror.KindNotFound))

		id, err := handler.Create("u1", dailyreportapimodels.DailyReportData{ProjectID: "p1", HoursWorked: 8})
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})

	t.Run(`only the reporter can submit`, func(t *testing.T) {
		handler, store := newReportHandler()
		store.recs["dr1"] = report("dr1", "u1", models.DRStatusDraft)

		err := handler.Submit("dr1", "u2")
		require.True(t, apperror.IsKind(err, apperror.KindValidation))

		require.NoError(t, handler.Submit("dr1", "u1"))
		require.Equal(t, models.DRStatusSubmitted, store.recs["dr1"].Status)
	})

	t.Run(`submitting twice is an invalid state`, func(t *testing.T) {
		handler, store := newReportHandler()
		store.recs["dr1"] = report("dr1", "u1", models.DRStatusSubmitted)

		err := handler.Submit("dr1", "u1")
		require.True(t, apperror.IsKind(err, apperror.KindInvalidState))
	})

	t.Run(`resubmission clears the rejection reason`, func(t *testing.T) {
		handler, store := newReportHandler()
		rec := report("dr1", "u1", models.DRStatusRejected)
		rec.RejectionReason = "incomplete"
		store.recs["dr1"] = rec

		require.NoError(t, handler.Submit("dr1", "u1"))
		require.Equal(t, models.DRStatusSubmitted, store.recs["dr1"].Status)
		require.Empty(t, store.recs["dr1"].RejectionReason)
	})

	t.Run(`approve and reject follow the status machine`, func(t *testing.T) {
		handler, store := newReportHandler()
		store.recs["dr1"] = report("dr1", "u1", models.DRStatusSubmitted)
		store.recs["dr2"] = report("dr2", "u1", models.DRStatusDraft)

		require.NoError(t, handler.Approve("dr1", "u-manager"))
		require.Equal(t, models.DRStatusApproved, store.recs["dr1"].Status)

		err := handler.Approve("dr2", "u-manager")
		require.True(t, apperror.IsKind(err, apperror.KindInvalidState))

		err = handler.Reject("dr2", "u-manager", "")
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run(`approved reports cannot be deleted`, func(t *testing.T) {
		handler, store := newReportHandler()
		store.recs["dr1"] = report("dr1", "u1", models.DRStatusApproved)

		err := handler.Delete("dr1")
		require.True(t, apperror.IsKind(err, apperror.KindInvalidState))

		store.recs["dr2"] = report("dr2", "u1", models.DRStatusDraft)
		require.NoError(t, handler.Delete("dr2"))
	})

	t.Run(`edits are limited to the reporter's unsubmitted reports`, func(t *testing.T) {
		handler, store := newReportHandler()
		store.recs["dr1"] = report("dr1", "u1", models.DRStatusSubmitted)

		err := handler.Update("dr1", "u1", dailyreportapimodels.DailyReportData{WorkSummary: "x"})
		require.True(t, apperror.IsKind(err, apperror.KindInvalidState))

		store.recs["dr2"] = report("dr2", "u1", models.DRStatusDraft)
		err = handler.Update("dr2", "u2", dailyreportapimodels.DailyReportData{WorkSummary: "x"})
		require.True(t, apperror.IsKind(err, apperror.KindValidation))

		require.NoError(t, handler.Update("dr2", "u1", dailyreportapimodels.DailyReportData{WorkSummary: "cabling done"}))
		require.Equal(t, "cabling done", store.recs["dr2"].WorkSummary)
	})
}

func TestBulkSetStatus(t *testing.T) {
	handler, store := newReportHandler()
	store.recs["dr1"] = report("dr1", "u1", models.DRStatusSubmitted)
	store.recs["dr2"] = report("dr2", "u1", models.DRStatusSubmitted)
	store.recs["dr3"] = report("dr3", "u1", models.DRStatusDraft)

	succeeded, failed := handler.BulkSetStatus("u-manager", dailyreportapimodels.BulkStatusRequest{
		ReportIDs: []string{"dr1", "dr2", "dr3"},
		Status:    models.DRStatusApproved,
	})
	require.Equal(t, 2, succeeded)
	require.Equal(t, 1, failed)
	require.Equal(t, models.DRStatusApproved, store.recs["dr1"].Status)
	require.Equal(t, models.DRStatusApproved, store.recs["dr2"].Status)
	require.Equal(t, models.DRStatusDraft, store.recs["dr3"].Status)
}
