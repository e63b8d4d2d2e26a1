package service

import (
	"context"

	"clubhub/internal/domain"
)

type TokenService interface {
	Issue(ctx context.Context, acc domain.Account) (string, error)
	Parse(ctx context.Context, token string) (domain.Principal, error)
}
