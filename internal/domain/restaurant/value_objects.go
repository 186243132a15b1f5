package restaurant

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidName     = errors.New("restaurant name must be 1-50 characters")
	ErrInvalidAddress  = errors.New("restaurant address must be 1-200 characters")
	ErrInvalidCity     = errors.New("restaurant city must be 1-100 characters")
	ErrInvalidPhotoURL = errors.New("photo url must be an absolute http(s) url of at most 255 characters")
	ErrAlreadyDeleted  = errors.New("restaurant already deleted")
)

const (
	maxNameLen     = 50
	maxAddressLen  = 200
	maxCityLen     = 100
	maxPhotoURLLen = 255
)

type Name struct{ value string }

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameLen {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

type Address struct{ value string }

func NewAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxAddressLen {
		return Address{}, ErrInvalidAddress
	}
	return Address{value: s}, nil
}

func (a Address) String() string { return a.value }

type City struct{ value string }

func NewCity(s string) (City, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxCityLen {
		return City{}, ErrInvalidCity
	}
	return City{value: s}, nil
}

func (c City) String() string { return c.value }

// NewPhotoURL accepts nil (no photo).
func NewPhotoURL(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if len(v) > maxPhotoURLLen {
		return nil, ErrInvalidPhotoURL
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidPhotoURL
	}
	return &v, nil
}
