package dbmodels

import "solar-projects-backend/models"

type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);uniqueIndex"`
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	FullName     string `gorm:"type:varchar(255)"`
	PasswordHash string
	Role         models.UserRole `gorm:"type:varchar(50);index"`
	IsActive     bool            `gorm:"default:true"`
}

func (u User) GetDisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
