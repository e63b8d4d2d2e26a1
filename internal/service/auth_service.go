package service

import (
	"context"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
)

type AuthService interface {
	RegisterClub(ctx context.Context, r dto.RegisterClubRequest) error
	RegisterStudent(ctx context.Context, r dto.RegisterStudentRequest) error
	LoginClub(ctx context.Context, r dto.ClubLoginRequest) (*dto.LoginResponse, error)
	LoginStudent(ctx context.Context, r dto.StudentLoginRequest) (*dto.LoginResponse, error)
	Verify(ctx context.Context, token string) (domain.Principal, error)
	ListUsers(ctx context.Context) ([]dto.UserView, error)
}
