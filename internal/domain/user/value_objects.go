package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidRole     = errors.New("invalid role")
	ErrEmptyPassword   = errors.New("password must not be empty")
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]{3,50}$`)

type Username struct {
	value string
}

func NewUsername(s string) (Username, error) {
	s = strings.TrimSpace(s)
	if !usernameRegex.MatchString(s) {
		return Username{}, ErrInvalidUsername
	}
	return Username{value: s}, nil
}

func (u Username) Value() string {
	return u.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if s == "" {
		return Password{}, ErrEmptyPassword
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

type Credentials struct {
	username Username
	password Password
}

func NewCredentials(username, password string) (Credentials, error) {
	u, err := NewUsername(username)
	if err != nil {
		return Credentials{}, err
	}
	p, err := NewPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{username: u, password: p}, nil
}

func (c Credentials) Username() Username { return c.username }
func (c Credentials) Password() Password { return c.password }
