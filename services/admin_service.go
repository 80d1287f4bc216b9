package services

import (
	"context"
	"errors"

	"github.com/pskpp/festival/utils"
)

// The site has one administrator identified by a shared password.
type AdminService interface {
	Authenticate(ctx context.Context, password string) error
}

type adminService struct {
	passwordHash string
}

func NewAdminService(passwordHash string) (AdminService, error) {
	if passwordHash == "" {
		return nil, errors.New("admin password hash is empty")
	}
	return &adminService{passwordHash: passwordHash}, nil
}

func (s *adminService) Authenticate(ctx context.Context, password string) error {
	if password == "" || !utils.CheckPasswordHash(password, s.passwordHash) {
		return ErrInvalidCredentials
	}
	return nil
}
