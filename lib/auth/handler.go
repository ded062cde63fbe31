package authhandler

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"solar-projects-backend/db"
	usersstore "solar-projects-backend/lib/users/store"
	apperror "solar-projects-backend/lib/utils/app-error"
	authutils "solar-projects-backend/lib/utils/auth-utils"
	authapimodels "solar-projects-backend/models/api/auth"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Login(req authapimodels.LoginRequest) (*authapimodels.LoginResponse, error)
	Refresh(refreshToken string) (*authapimodels.LoginResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(req authapimodels.LoginRequest) (*authapimodels.LoginResponse, error) {
	user, err := i.usersStore.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.Validation("invalid credentials")
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		log.WithField("username", req.Username).Info("login rejected, wrong password")
		return nil, apperror.Validation("invalid credentials")
	}
	return i.issueTokens(*user)
}

func (i impl) Refresh(refreshToken string) (*authapimodels.LoginResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Validation("invalid refresh token")
	}
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.Validation("invalid refresh token")
	}
	return i.issueTokens(*user)
}

func (i impl) issueTokens(user dbmodels.User) (*authapimodels.LoginResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetDisplayName(), user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetDisplayName())
	if err != nil {
		return nil, err
	}
	return &authapimodels.LoginResponse{
		AccessToken:  token,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
	}, nil
}
