package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office account. Customers never log in; they manage a
// booking with its (id, dni, code) credential instead.
type User struct {
	id           uuid.UUID
	username     Username
	passwordHash string
	role         Role
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username Username, passwordHash string, role Role, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructUser(id uuid.UUID, username Username, passwordHash string, role Role, lastLogin *time.Time, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Username() Username    { return u.username }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }

func (u *User) CanAdminister() bool {
	return u.isActive && u.role == RoleAdmin
}
