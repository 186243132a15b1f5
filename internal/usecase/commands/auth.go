package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/pkg/password"
	"restaurant-booking/internal/usecase/queries"
	"restaurant-booking/internal/usecase/shared"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth_mock.go -package=commandsmock

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, time.Time, error)
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
	ExpiresAt   time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	tokens    TokenIssuer
	clock     clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, tokens TokenIssuer, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		readStore: readStore,
		tokens:    tokens,
		clock:     clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	credentials, err := user.NewCredentials(in.Username, in.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, expiresAt, err := a.tokens.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, view.ID, a.clock.Now())
	})
	if err != nil {
		// login already succeeded; only the audit column is stale
		slog.WarnContext(ctx, "failed to update last login", "user_id", view.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:      view.ID,
		Role:        role,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.readStore.FindByUsername(ctx, credentials.Username().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a password mismatch to prevent user enumeration
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err = password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return view, nil
}
