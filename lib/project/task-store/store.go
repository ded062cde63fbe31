package projecttaskstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ProjectTask) (string, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	GetByID(id string) (rec *dbmodels.ProjectTask, err error)
	GetByProject(projectID string) (list []dbmodels.ProjectTask, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProjectTask) (string, error) {
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
		Model(&dbmodels.ProjectTask{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.ProjectTask{}).
		Error
}

func (i impl) GetByID(id string) (rec *dbmodels.ProjectTask, err error) {
	err = i.db.Model(dbmodels.ProjectTask{}).
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

func (i impl) GetByProject(projectID string) (list []dbmodels.ProjectTask, err error) {
	err = i.db.Model(dbmodels.ProjectTask{}).
		Where("project_id = ?", projectID).
		Preload(clause.Associations).
		Order("created_at").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
