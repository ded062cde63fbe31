package dailyreportstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solar-projects-backend/models"
	dailyreportapimodels "solar-projects-backend/models/api/daily-report"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DailyReport) (string, error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateWithStatusGuard reports false when the row left the expected
	// status before the update landed.
	UpdateWithStatusGuard(id string, expected models.DailyReportStatus, updMap map[string]interface{}) (updated bool, err error)
	Delete(id string) error
	GetByID(id string) (rec *dbmodels.DailyReport, err error)
	GetList(filter dailyreportapimodels.DailyReportFilter) (list []dbmodels.DailyReport, rowCount int64, err error)
	CountByStatus(statuses []models.DailyReportStatus) (int64, error)

	AddAttachment(rec dbmodels.DailyReportAttachment) (string, error)
	GetAttachment(id string) (rec *dbmodels.DailyReportAttachment, err error)
	DeleteAttachment(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DailyReport) (string, error) {
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
		Model(&dbmodels.DailyReport{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) UpdateWithStatusGuard(id string, expected models.DailyReportStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.DailyReport{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.DailyReport{}).
		Error
}

func (i impl) GetByID(id string) (rec *dbmodels.DailyReport, err error) {
	err = i.db.Model(dbmodels.DailyReport{}).
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

func (i impl) GetList(filter dailyreportapimodels.DailyReportFilter) (list []dbmodels.DailyReport, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.DailyReport{})
	if filter.ProjectID != "" {
		tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ReporterID != "" {
		tx.Where("reporter_id = ?", filter.ReporterID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		tx.Where("report_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx.Where("report_date <= ?", *filter.DateTo)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload(clause.Associations).
		Order("report_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) CountByStatus(statuses []models.DailyReportStatus) (count int64, err error) {
	err = i.db.Model(dbmodels.DailyReport{}).
		Where("status IN ?", statuses).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) AddAttachment(rec dbmodels.DailyReportAttachment) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetAttachment(id string) (rec *dbmodels.DailyReportAttachment, err error) {
	err = i.db.Model(dbmodels.DailyReportAttachment{}).
		Where("id = ?", id).
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

func (i impl) DeleteAttachment(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.DailyReportAttachment{}).
		Error
}
