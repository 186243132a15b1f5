package usecase

import (
	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal is the caller identity carried by a verified access token.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
}

func (p Principal) HasRoleAtLeast(min user.Role) bool {
	return p.Role.Level() >= min.Level()
}

// TokenValidator resolves bearer tokens for the auth middleware.
type TokenValidator interface {
	Authenticate(token string) (Principal, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) Authenticate(token string) (Principal, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return Principal{}, err
	}
	if claims.UserID == uuid.Nil {
		return Principal{}, errs.New("token has no subject")
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Principal{}, errs.Wrap(err, "token carries unknown role")
	}
	return Principal{UserID: claims.UserID, Role: role}, nil
}
