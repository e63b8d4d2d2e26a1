package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/internal/observability/metrics"
	"clubhub/internal/observability/middleware"
	"clubhub/internal/service"
	"clubhub/internal/store"
)

type AuthServiceImpl struct {
	Users           store.UserStore
	PasswordService service.PasswordService
	TService        service.TokenService

	now func() time.Time
}

var _ service.AuthService = (*AuthServiceImpl)(nil)

func NewAuthServiceImpl(users store.UserStore, passwordService service.PasswordService, tokenService service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		Users:           users,
		PasswordService: passwordService,
		TService:        tokenService,
		now:             time.Now,
	}
}

func (a *AuthServiceImpl) RegisterClub(ctx context.Context, r dto.RegisterClubRequest) (err error) {
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues(string(domain.UserTypeClub), metrics.Result(err)).Inc()
	}()

	r.Username = strings.TrimSpace(r.Username)
	r.ClubName = strings.TrimSpace(r.ClubName)
	r.Email = normalizeEmail(r.Email)

	if err := firstErr(
		required("username", r.Username, "Username is required."),
		required("clubName", r.ClubName, "Club name is required."),
		required("email", r.Email, "Email is required."),
		validEmail("email", r.Email),
		validPassword(r.Password),
	); err != nil {
		return err
	}

	taken, err := a.Users.UsernameExists(ctx, r.Username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if !taken {
		if taken, err = a.Users.EmailExists(ctx, r.Email); err != nil {
			return fmt.Errorf("check email: %w", err)
		}
	}
	if taken {
		return conflict(msgUsernameOrEmailTaken)
	}

	hash, err := a.PasswordService.Hash(r.Password)
	if err != nil {
		return err
	}
	club := &domain.Club{
		Credentials: domain.Credentials{
			Email:        r.Email,
			PasswordHash: hash,
			CreatedAt:    a.now().UTC(),
		},
		Username: r.Username,
		ClubName: r.ClubName,
	}
	if err := a.Users.CreateClub(ctx, club); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return conflict(msgUsernameOrEmailTaken)
		}
		return err
	}

	middleware.Logger(ctx).Info("club registered", "user_id", club.ID, "username", club.Username)
	return nil
}

func (a *AuthServiceImpl) RegisterStudent(ctx context.Context, r dto.RegisterStudentRequest) (err error) {
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues(string(domain.UserTypeStudent), metrics.Result(err)).Inc()
	}()

	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.StudentID = strings.TrimSpace(r.StudentID)

	if err := firstErr(
		required("name", r.Name, "Name is required."),
		required("studentId", r.StudentID, "Student ID is required."),
		required("email", r.Email, "Email is required."),
		validEmail("email", r.Email),
		validPassword(r.Password),
	); err != nil {
		return err
	}

	taken, err := a.Users.EmailExists(ctx, r.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return conflict(msgEmailTaken)
	}

	hash, err := a.PasswordService.Hash(r.Password)
	if err != nil {
		return err
	}
	student := &domain.Student{
		Credentials: domain.Credentials{
			Email:        r.Email,
			PasswordHash: hash,
			CreatedAt:    a.now().UTC(),
		},
		Name:      r.Name,
		StudentID: r.StudentID,
	}
	if err := a.Users.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return conflict(msgEmailTaken)
		}
		return err
	}

	middleware.Logger(ctx).Info("student registered", "user_id", student.ID)
	return nil
}

func (a *AuthServiceImpl) LoginClub(ctx context.Context, r dto.ClubLoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(r.Username)
	res, err := a.login(ctx, domain.UserTypeClub, r.Password, func() (domain.Account, error) {
		return a.Users.ClubByUsername(ctx, username)
	})
	metrics.LoginsTotal.WithLabelValues(string(domain.UserTypeClub), metrics.Result(err)).Inc()
	return res, err
}

func (a *AuthServiceImpl) LoginStudent(ctx context.Context, r dto.StudentLoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(r.Email)
	res, err := a.login(ctx, domain.UserTypeStudent, r.Password, func() (domain.Account, error) {
		return a.Users.StudentByEmail(ctx, email)
	})
	metrics.LoginsTotal.WithLabelValues(string(domain.UserTypeStudent), metrics.Result(err)).Inc()
	return res, err
}

// login never tells the caller whether the account or the password was wrong.
func (a *AuthServiceImpl) login(ctx context.Context, kind domain.UserType, password string, lookup func() (domain.Account, error)) (*dto.LoginResponse, error) {
	log := middleware.Logger(ctx)

	acc, err := lookup()
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("login rejected", "type", kind, "reason", "unknown account")
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("lookup %s: %w", kind, err)
	}

	if password == "" || !a.PasswordService.Verify(password, acc.Base().PasswordHash) {
		log.Info("login rejected", "type", kind, "user_id", acc.Base().ID, "reason", "bad password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := a.TService.Issue(ctx, acc)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info("login succeeded", "type", kind, "user_id", acc.Base().ID)
	return &dto.LoginResponse{
		Message: dto.MsgLoginSuccessful,
		Token:   token,
		User:    dto.NewUserView(acc),
	}, nil
}

func (a *AuthServiceImpl) Verify(ctx context.Context, token string) (domain.Principal, error) {
	return a.TService.Parse(ctx, token)
}

func (a *AuthServiceImpl) ListUsers(ctx context.Context) ([]dto.UserView, error) {
	accounts, err := a.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserView, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, dto.NewUserView(acc))
	}
	return out, nil
}
