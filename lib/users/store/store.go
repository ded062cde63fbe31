package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"solar-projects-backend/models"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByUsername(username string) (rec *dbmodels.User, err error)
	GetList(page, limit int) (list []dbmodels.User, rowCount int64, err error)
	GetActiveByRole(role models.UserRole) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
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

func (i impl) FindByUsername(username string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("username = ?", username).
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

func (i impl) GetList(page, limit int) (list []dbmodels.User, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.User{})
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err = tx.
		Order("username").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) GetActiveByRole(role models.UserRole) (list []dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("role = ? AND is_active = true", role).
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
