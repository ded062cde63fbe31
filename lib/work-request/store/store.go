package workrequeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solar-projects-backend/models"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkRequest) (string, error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateWithStatusGuard applies updMap only while the row still has
	// the expected status. A false result means a concurrent transition
	// won the race.
	UpdateWithStatusGuard(id string, expected models.WorkRequestStatus, updMap map[string]interface{}) (updated bool, err error)
	// UpdateWithApproverGuard additionally requires the row to still be
	// assigned to the given approver. Escalations keep the status
	// unchanged, so the status guard alone cannot detect a lost race.
	UpdateWithApproverGuard(id string, expected models.WorkRequestStatus, approverColumn, approverID string, updMap map[string]interface{}) (updated bool, err error)
	Delete(id string) error
	GetByID(id string) (rec *dbmodels.WorkRequest, err error)
	GetList(filter workrequestapimodels.WorkRequestFilter) (list []dbmodels.WorkRequest, rowCount int64, err error)
	GetPendingByApprover(approverID string) (list []dbmodels.WorkRequest, err error)
	GetPendingOlderThan(hours int) (list []dbmodels.WorkRequest, err error)
	CountByStatus(statuses []models.WorkRequestStatus) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkRequest) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.WorkRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) UpdateWithStatusGuard(id string, expected models.WorkRequestStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.WorkRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) UpdateWithApproverGuard(id string, expected models.WorkRequestStatus, approverColumn, approverID string, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.WorkRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Where(approverColumn+" = ?", approverID).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.WorkRequest{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Clauses(clause.Returning{}).
		Delete(&rec).
		Error
}

func (i impl) GetByID(id string) (rec *dbmodels.WorkRequest, err error) {
	err = i.db.Model(dbmodels.WorkRequest{}).
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetList(filter workrequestapimodels.WorkRequestFilter) (list []dbmodels.WorkRequest, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.WorkRequest{})
	i.applyFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload(clause.Associations).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) applyFilter(tx *gorm.DB, filter workrequestapimodels.WorkRequestFilter) {
	if filter.ProjectID != "" {
		tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		tx.Where("type = ?", filter.Type)
	}
	if filter.Priority != "" {
		tx.Where("priority = ?", filter.Priority)
	}
	if filter.RequestedByID != "" {
		tx.Where("requested_by_id = ?", filter.RequestedByID)
	}
	if filter.AssignedToID != "" {
		tx.Where("assigned_to_id = ?", filter.AssignedToID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
}

func (i impl) GetPendingByApprover(approverID string) (list []dbmodels.WorkRequest, err error) {
	err = i.db.Model(dbmodels.WorkRequest{}).
		Where("(status = ? AND manager_approver_id = ?) OR (status = ? AND admin_approver_id = ?)",
			models.WRStatusPendingManagerApproval, approverID,
			models.WRStatusPendingAdminApproval, approverID).
		Preload(clause.Associations).
		Order("submitted_for_approval_date").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) GetPendingOlderThan(hours int) (list []dbmodels.WorkRequest, err error) {
	err = i.db.Model(dbmodels.WorkRequest{}).
		Where("status IN ?", []models.WorkRequestStatus{
			models.WRStatusPendingManagerApproval,
			models.WRStatusPendingAdminApproval,
		}).
		Where("submitted_for_approval_date < NOW() - make_interval(hours => ?)", hours).
		Preload(clause.Associations).
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByStatus(statuses []models.WorkRequestStatus) (count int64, err error) {
	err = i.db.Model(dbmodels.WorkRequest{}).
		Where("status IN ?", statuses).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
