package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solar-projects-backend/config"
	apperror "solar-projects-backend/lib/utils/app-error"
	"solar-projects-backend/lib/utils/helpers"
	"solar-projects-backend/models"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
	dbmodels "solar-projects-backend/models/db"
)

type fakeWRStore struct {
	recs map[string]*dbmodels.WorkRequest
	// guardDenied forces every guarded update to report a lost race.
	guardDenied bool
	// afterGet runs once after the next GetByID, emulating a concurrent
	// writer slipping in between the read and the guarded update.
	afterGet func()
}

func (f *fakeWRStore) Create(rec dbmodels.WorkRequest) (string, error) {
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeWRStore) Update(id string, updMap map[string]interface{}) error {
	if rec, ok := f.recs[id]; ok {
		applyWorkRequestUpdates(rec, updMap)
	}
	return nil
}

func (f *fakeWRStore) UpdateWithStatusGuard(id string, expected models.WorkRequestStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.recs[id]
	if !ok || rec.Status != expected || f.guardDenied {
		return false, nil
	}
	applyWorkRequestUpdates(rec, updMap)
	return true, nil
}

func (f *fakeWRStore) UpdateWithApproverGuard(id string, expected models.WorkRequestStatus, approverColumn, approverID string, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.recs[id]
	if !ok || rec.Status != expected || f.guardDenied {
		return false, nil
	}
	current := rec.ManagerApproverID
	if approverColumn == "admin_approver_id" {
		current = rec.AdminApproverID
	}
	if current == nil || *current != approverID {
		return false, nil
	}
	applyWorkRequestUpdates(rec, updMap)
	return true, nil
}

func (f *fakeWRStore) Delete(id string) error {
	delete(f.recs, id)
	return nil
}

func (f *fakeWRStore) GetByID(id string) (*dbmodels.WorkRequest, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}
	return &cp, nil
}

func (f *fakeWRStore) GetList(filter workrequestapimodels.WorkRequestFilter) ([]dbmodels.WorkRequest, int64, error) {
	return nil, 0, nil
}

func (f *fakeWRStore) GetPendingByApprover(approverID string) ([]dbmodels.WorkRequest, error) {
	list := []dbmodels.WorkRequest{}
	for _, rec := range f.recs {
		assigned := rec.CurrentApproverID()
		if assigned != nil && *assigned == approverID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeWRStore) GetPendingOlderThan(hours int) ([]dbmodels.WorkRequest, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	list := []dbmodels.WorkRequest{}
	for _, rec := range f.recs {
		if rec.Status.IsPending() && rec.SubmittedForApprovalDate != nil && rec.SubmittedForApprovalDate.Before(cutoff) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeWRStore) CountByStatus(statuses []models.WorkRequestStatus) (int64, error) {
	return int64(len(f.recs)), nil
}

func applyWorkRequestUpdates(rec *dbmodels.WorkRequest, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.WorkRequestStatus)
		case "submitted_for_approval_date":
			rec.SubmittedForApprovalDate = helpers.TimePtr(value.(time.Time))
		case "requires_manager_approval":
			rec.RequiresManagerApproval = value.(bool)
		case "requires_admin_approval":
			rec.RequiresAdminApproval = value.(bool)
		case "is_auto_approved":
			rec.IsAutoApproved = value.(bool)
		case "manager_approver_id":
			rec.ManagerApproverID = helpers.StrPtr(value.(string))
		case "admin_approver_id":
			rec.AdminApproverID = helpers.StrPtr(value.(string))
		case "manager_approval_date":
			rec.ManagerApprovalDate = helpers.TimePtr(value.(time.Time))
		case "admin_approval_date":
			rec.AdminApprovalDate = helpers.TimePtr(value.(time.Time))
		case "manager_comments":
			rec.ManagerComments = value.(string)
		case "admin_comments":
			rec.AdminComments = value.(string)
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		}
	}
}

type fakeApprovalStore struct {
	records []dbmodels.WorkRequestApproval
	nextID  int
}

func (f *fakeApprovalStore) CreateRecord(rec dbmodels.WorkRequestApproval) (string, error) {
	f.nextID++
	rec.ID = string(rune('a' + f.nextID))
	rec.CreatedAt = time.Now()
	f.records = append(f.records, rec)
	return rec.ID, nil
}

func (f *fakeApprovalStore) CloseActiveRecords(workRequestID string) error {
	now := time.Now()
	for n := range f.records {
		if f.records[n].WorkRequestID == workRequestID && f.records[n].IsActive {
			f.records[n].IsActive = false
			f.records[n].ProcessedAt = &now
		}
	}
	return nil
}

func (f *fakeApprovalStore) GetActiveRecord(workRequestID string) (*dbmodels.WorkRequestApproval, error) {
	for n := range f.records {
		if f.records[n].WorkRequestID == workRequestID && f.records[n].IsActive {
			return &f.records[n], nil
		}
	}
	return nil, nil
}

func (f *fakeApprovalStore) GetHistory(workRequestID string) ([]dbmodels.WorkRequestApproval, error) {
	list := []dbmodels.WorkRequestApproval{}
	for _, rec := range f.records {
		if rec.WorkRequestID == workRequestID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeApprovalStore) GetStatistics(since *time.Time) (workrequestapimodels.ApprovalStatistics, error) {
	return workrequestapimodels.ApprovalStatistics{}, nil
}

func (f *fakeApprovalStore) active(workRequestID string) []dbmodels.WorkRequestApproval {
	list := []dbmodels.WorkRequestApproval{}
	for _, rec := range f.records {
		if rec.WorkRequestID == workRequestID && rec.IsActive {
			list = append(list, rec)
		}
	}
	return list
}

type fakeUsersStore struct {
	users map[string]*dbmodels.User
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) {
	f.users[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeUsersStore) Update(userID string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeUsersStore) GetByID(userID string) (*dbmodels.User, error) {
	rec, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeUsersStore) FindByUsername(username string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.Username == username {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) GetList(page, limit int) ([]dbmodels.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsersStore) GetActiveByRole(role models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	ids := []string{"u-admin", "u-manager", "u-user"}
	for _, id := range ids {
		rec, ok := f.users[id]
		if ok && rec.Role == role && rec.IsActive {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func testConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Approval.AutoApproveCostLimit = 5000
	config.Conf.Approval.AutoApproveHoursLimit = 16
	config.Conf.Approval.AdminApprovalCostLimit = 50000
	config.Conf.Approval.ReminderAfterHours = 48
}

func newTestHandler() (impl, *fakeWRStore, *fakeApprovalStore, *fakeUsersStore) {
	testConfig()
	wrStore := &fakeWRStore{recs: map[string]*dbmodels.WorkRequest{}}
	approvalStore := &fakeApprovalStore{}
	usersStore := &fakeUsersStore{users: map[string]*dbmodels.User{
		"u-admin": {
			BaseModel: dbmodels.BaseModel{ID: "u-admin"},
			FullName:  "Anan Siriwan",
			Role:      models.UserRoleAdmin,
			IsActive:  true,
		},
		"u-manager": {
			BaseModel: dbmodels.BaseModel{ID: "u-manager"},
			FullName:  "Malee Chaiyo",
			Role:      models.UserRoleManager,
			IsActive:  true,
		},
		"u-user": {
			BaseModel: dbmodels.BaseModel{ID: "u-user"},
			Role:      models.UserRoleUser,
			IsActive:  true,
		},
	}}
	handler := impl{
		wrStore:       wrStore,
		approvalStore: approvalStore,
		usersStore:    usersStore,
	}
	return handler, wrStore, approvalStore, usersStore
}

func draftRequest(id string, cost, hours float64) *dbmodels.WorkRequest {
	return &dbmodels.WorkRequest{
		BaseModel:      dbmodels.BaseModel{ID: id},
		ProjectID:      "p1",
		Title:          "Inverter check " + id,
		Status:         models.WRStatusDraft,
		RequestedByID:  "u-user",
		EstimatedCost:  &cost,
		EstimatedHours: &hours,
	}
}

func TestSubmitForApproval(t *testing.T) {
	t.Run(`cheap request is approved automatically`, func(t *testing.T) {
		handler, wrStore, approvalStore, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 1000, 8)

		view, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusApproved, view.Status)
		require.True(t, view.IsAutoApproved)

		require.Len(t, approvalStore.records, 1)
		require.Equal(t, models.ApprovalActionAutoApprove, approvalStore.records[0].Action)
		require.False(t, approvalStore.records[0].IsActive)
	})

	t.Run(`mid-range request goes to the project manager`, func(t *testing.T) {
		handler, wrStore, approvalStore, _ := newTestHandler()
		rec := draftRequest("wr1", 20000, 8)
		rec.Project = &dbmodels.Project{
			BaseModel:        dbmodels.BaseModel{ID: "p1"},
			ProjectManagerID: helpers.StrPtr("u-manager"),
		}
		wrStore.recs["wr1"] = rec

		view, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingManagerApproval, view.Status)
		require.True(t, view.RequiresManagerApproval)
		require.False(t, view.RequiresAdminApproval)
		require.Equal(t, "u-manager", *wrStore.recs["wr1"].ManagerApproverID)

		active := approvalStore.active("wr1")
		require.Len(t, active, 1)
		require.Equal(t, models.ApprovalActionSubmit, active[0].Action)
		require.Equal(t, models.ApprovalLevelManager, active[0].Level)
	})

	t.Run(`high hours alone force manager approval`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 100, 40)

		view, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingManagerApproval, view.Status)
	})

	t.Run(`expensive request requires both levels`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 80000, 8)

		view, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingManagerApproval, view.Status)
		require.True(t, view.RequiresManagerApproval)
		require.True(t, view.RequiresAdminApproval)
	})

	t.Run(`without a project manager the first active manager is picked`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 20000, 8)

		_, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.NoError(t, err)
		require.Equal(t, "u-manager", *wrStore.recs["wr1"].ManagerApproverID)
	})

	t.Run(`a valid preferred manager wins over the default pick`, func(t *testing.T) {
		handler, wrStore, _, usersStore := newTestHandler()
		usersStore.users["u-manager2"] = &dbmodels.User{
			BaseModel: dbmodels.BaseModel{ID: "u-manager2"},
			Role:      models.UserRoleManager,
			IsActive:  true,
		}
		rec := draftRequest("wr1", 20000, 8)
		rec.Project = &dbmodels.Project{
			BaseModel:        dbmodels.BaseModel{ID: "p1"},
			ProjectManagerID: helpers.StrPtr("u-manager"),
		}
		wrStore.recs["wr1"] = rec

		_, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{
			PreferredManagerID: helpers.StrPtr("u-manager2"),
		})
		require.NoError(t, err)
		require.Equal(t, "u-manager2", *wrStore.recs["wr1"].ManagerApproverID)
	})

	t.Run(`a preferred manager who cannot approve is rejected`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 20000, 8)

		_, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{
			PreferredManagerID: helpers.StrPtr("u-user"),
		})
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
		require.Equal(t, models.WRStatusDraft, wrStore.recs["wr1"].Status)
	})

	t.Run(`the submitter can force the admin level onto a cheap request`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 1000, 8)

		view, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{
			RequiresAdminApproval: true,
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingManagerApproval, view.Status)
		require.True(t, view.RequiresManagerApproval)
		require.True(t, view.RequiresAdminApproval)
		require.False(t, view.IsAutoApproved)
	})

	t.Run(`submission comments land on the first audit record`, func(t *testing.T) {
		handler, wrStore, approvalStore, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 20000, 8)

		_, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{
			Comments: "needed before the grid inspection",
		})
		require.NoError(t, err)
		require.Len(t, approvalStore.records, 1)
		require.Equal(t, "needed before the grid inspection", approvalStore.records[0].Comments)
	})

	t.Run(`only drafts can be submitted`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		rec := draftRequest("wr1", 20000, 8)
		rec.Status = models.WRStatusApproved
		wrStore.recs["wr1"] = rec

		_, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.Error(t, err)
		require.True(t, apperror.IsKind(err, apperror.KindInvalidState))
	})

	t.Run(`unknown request is not found`, func(t *testing.T) {
		handler, _, _, _ := newTestHandler()
		_, err := handler.SubmitForApproval("missing", "u-user", workrequestapimodels.SubmitRequest{})
		require.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run(`lost status race is a conflict`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		wrStore.recs["wr1"] = draftRequest("wr1", 20000, 8)
		wrStore.guardDenied = true

		_, err := handler.SubmitForApproval("wr1", "u-user", workrequestapimodels.SubmitRequest{})
		require.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
}

func submitPending(t *testing.T, handler impl, wrStore *fakeWRStore, id string, cost float64) {
	t.Helper()
	wrStore.recs[id] = draftRequest(id, cost, 8)
	_, err := handler.SubmitForApproval(id, "u-user", workrequestapimodels.SubmitRequest{})
	require.NoError(t, err)
}

func TestProcessApproval(t *testing.T) {
	t.Run(`manager approval closes the chain for mid-range requests`, func(t *testing.T) {
		handler, wrStore, approvalStore, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 20000)

		view, err := handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action:   string(models.ApprovalActionApprove),
			Comments: "ok",
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusApproved, view.Status)
		require.Equal(t, "ok", view.ManagerComments)
		require.Empty(t, approvalStore.active("wr1"))
	})

	t.Run(`manager approval hands expensive requests to an administrator`, func(t *testing.T) {
		handler, wrStore, approvalStore, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 80000)

		view, err := handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action: string(models.ApprovalActionApprove),
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingAdminApproval, view.Status)
		require.Equal(t, "u-admin", *wrStore.recs["wr1"].AdminApproverID)

		active := approvalStore.active("wr1")
		require.Len(t, active, 1)
		require.Equal(t, models.ApprovalLevelAdmin, active[0].Level)

		view, err = handler.ProcessApproval("wr1", "u-admin", models.UserRoleAdmin, workrequestapimodels.ApprovalRequest{
			Action: string(models.ApprovalActionApprove),
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusApproved, view.Status)
		require.Empty(t, approvalStore.active("wr1"))

		// Both decision dates are recorded, in chain order.
		require.NotNil(t, view.ManagerApprovalDate)
		require.NotNil(t, view.AdminApprovalDate)
		require.False(t, view.AdminApprovalDate.Before(*view.ManagerApprovalDate))
	})

	t.Run(`rejection is terminal and keeps the reason`, func(t *testing.T) {
		handler, wrStore, approvalStore, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 20000)

		view, err := handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action:          string(models.ApprovalActionReject),
			RejectionReason: "budget exceeded",
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusRejected, view.Status)
		require.Equal(t, "budget exceeded", view.RejectionReason)
		require.Empty(t, approvalStore.active("wr1"))

		_, err = handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action: string(models.ApprovalActionApprove),
		})
		require.True(t, apperror.IsKind(err, apperror.KindInvalidState))
	})

	t.Run(`escalation swaps the approver and keeps the status`, func(t *testing.T) {
		handler, wrStore, approvalStore, usersStore := newTestHandler()
		usersStore.users["u-manager2"] = &dbmodels.User{
			BaseModel: dbmodels.BaseModel{ID: "u-manager2"},
			Role:      models.UserRoleManager,
			IsActive:  true,
		}
		submitPending(t, handler, wrStore, "wr1", 20000)

		view, err := handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action:           string(models.ApprovalActionEscalate),
			EscalationReason: "on vacation",
			EscalateToID:     helpers.StrPtr("u-manager2"),
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingManagerApproval, view.Status)
		require.Equal(t, "u-manager2", *wrStore.recs["wr1"].ManagerApproverID)

		// The history keeps the escalation and one fresh active slot.
		active := approvalStore.active("wr1")
		require.Len(t, active, 1)
		require.Equal(t, "u-manager2", active[0].ApproverID)
		require.Equal(t, models.ApprovalActionSubmit, active[0].Action)

		history, err := handler.GetApprovalHistory("wr1")
		require.NoError(t, err)
		require.Len(t, history, 3)
	})

	t.Run(`an escalation losing the approver race is a conflict`, func(t *testing.T) {
		handler, wrStore, approvalStore, usersStore := newTestHandler()
		usersStore.users["u-manager2"] = &dbmodels.User{
			BaseModel: dbmodels.BaseModel{ID: "u-manager2"},
			Role:      models.UserRoleManager,
			IsActive:  true,
		}
		submitPending(t, handler, wrStore, "wr1", 20000)

		// A competing escalation lands between this call's read and its
		// guarded update. The status did not change, only the approver.
		wrStore.afterGet = func() {
			wrStore.recs["wr1"].ManagerApproverID = helpers.StrPtr("u-manager3")
		}
		_, err := handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action:           string(models.ApprovalActionEscalate),
			EscalationReason: "double delegation",
			EscalateToID:     helpers.StrPtr("u-manager2"),
		})
		require.True(t, apperror.IsKind(err, apperror.KindConflict))
		require.Equal(t, "u-manager3", *wrStore.recs["wr1"].ManagerApproverID)
		require.Len(t, approvalStore.active("wr1"), 1)
	})

	t.Run(`escalation target must be able to decide the level`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 20000)

		_, err := handler.ProcessApproval("wr1", "u-manager", models.UserRoleManager, workrequestapimodels.ApprovalRequest{
			Action:       string(models.ApprovalActionEscalate),
			EscalateToID: helpers.StrPtr("u-user"),
		})
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run(`a plain user cannot decide approvals`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 20000)

		_, err := handler.ProcessApproval("wr1", "u-other", models.UserRoleUser, workrequestapimodels.ApprovalRequest{
			Action: string(models.ApprovalActionApprove),
		})
		require.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run(`the assigned approver may decide regardless of role checks`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 20000)
		wrStore.recs["wr1"].ManagerApproverID = helpers.StrPtr("u-user")

		view, err := handler.ProcessApproval("wr1", "u-user", models.UserRoleUser, workrequestapimodels.ApprovalRequest{
			Action: string(models.ApprovalActionApprove),
		})
		require.NoError(t, err)
		require.Equal(t, models.WRStatusApproved, view.Status)
	})
}

func TestBulkApproval(t *testing.T) {
	handler, wrStore, _, _ := newTestHandler()
	submitPending(t, handler, wrStore, "wr1", 20000)
	submitPending(t, handler, wrStore, "wr2", 20000)
	// wr3 is still a draft, deciding it must fail.
	wrStore.recs["wr3"] = draftRequest("wr3", 20000, 8)

	result := handler.BulkApproval("u-manager", models.UserRoleManager, workrequestapimodels.BulkApprovalRequest{
		WorkRequestIDs: []string{"wr1", "wr2", "wr3"},
		ApprovalRequest: workrequestapimodels.ApprovalRequest{
			Action: string(models.ApprovalActionApprove),
		},
	})
	require.Equal(t, 3, result.Processed)
	require.Equal(t, 2, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 3)
	require.True(t, result.Items[0].Success)
	require.True(t, result.Items[1].Success)
	require.False(t, result.Items[2].Success)
	require.NotEmpty(t, result.Items[2].Error)

	// The two decided requests really moved.
	require.Equal(t, models.WRStatusApproved, wrStore.recs["wr1"].Status)
	require.Equal(t, models.WRStatusApproved, wrStore.recs["wr2"].Status)
	require.Equal(t, models.WRStatusDraft, wrStore.recs["wr3"].Status)
}

func TestGetApprovalStatus(t *testing.T) {
	t.Run(`pending manager level with approver name`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 20000)
		submitted := time.Now().Add(-72 * time.Hour)
		wrStore.recs["wr1"].SubmittedForApprovalDate = &submitted

		status, err := handler.GetApprovalStatus("wr1")
		require.NoError(t, err)
		require.Equal(t, models.WRStatusPendingManagerApproval, status.Status)
		require.NotNil(t, status.CurrentLevel)
		require.Equal(t, models.ApprovalLevelManager, *status.CurrentLevel)
		require.Equal(t, "Malee Chaiyo", status.CurrentApproverName)
		require.Equal(t, 3, status.DaysPending)
	})

	t.Run(`a two-level request names the next approver once known`, func(t *testing.T) {
		handler, wrStore, _, _ := newTestHandler()
		submitPending(t, handler, wrStore, "wr1", 80000)
		wrStore.recs["wr1"].AdminApproverID = helpers.StrPtr("u-admin")

		status, err := handler.GetApprovalStatus("wr1")
		require.NoError(t, err)
		require.Equal(t, "Malee Chaiyo", status.CurrentApproverName)
		require.NotNil(t, status.NextApproverID)
		require.Equal(t, "u-admin", *status.NextApproverID)
		require.Equal(t, "Anan Siriwan", status.NextApproverName)
	})
}

func TestSendApprovalReminders(t *testing.T) {
	handler, wrStore, _, _ := newTestHandler()
	submitPending(t, handler, wrStore, "wr1", 20000)
	submitPending(t, handler, wrStore, "wr2", 20000)

	// Only wr1 crossed the reminder threshold.
	old := time.Now().Add(-72 * time.Hour)
	wrStore.recs["wr1"].SubmittedForApprovalDate = &old

	sent, err := handler.SendApprovalReminders()
	require.NoError(t, err)
	require.Equal(t, 1, sent)
}
