package projectstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solar-projects-backend/models"
	projectapimodels "solar-projects-backend/models/api/project"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Project) (string, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	GetByID(id string) (rec *dbmodels.Project, err error)
	GetList(filter projectapimodels.ProjectFilter) (list []dbmodels.Project, rowCount int64, err error)
	GetAllWithCoordinates() (list []dbmodels.Project, err error)
	CountByStatus(statuses []models.ProjectStatus) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Project) (string, error) {
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
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Project{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Clauses(clause.Returning{}).
		Delete(&rec).
		Error
}

func (i impl) GetByID(id string) (rec *dbmodels.Project, err error) {
	err = i.db.Model(dbmodels.Project{}).
		Where("id = ?", id).
		Preload("ProjectManager").
		Preload("Tasks").
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

func (i impl) GetList(filter projectapimodels.ProjectFilter) (list []dbmodels.Project, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.Project{})
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.ManagerID != "" {
		tx.Where("project_manager_id = ?", filter.ManagerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx.Where("project_name ILIKE ? OR address ILIKE ?", like, like)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("ProjectManager").
		Preload("Tasks").
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

func (i impl) GetAllWithCoordinates() (list []dbmodels.Project, err error) {
	err = i.db.Model(dbmodels.Project{}).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByStatus(statuses []models.ProjectStatus) (count int64, err error) {
	tx := i.db.Model(dbmodels.Project{})
	if len(statuses) > 0 {
		tx.Where("status IN ?", statuses)
	}
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
