package reservation

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidDate          = errors.New("date must be a calendar date in YYYY-MM-DD format")
	ErrInvalidCustomerName  = errors.New("customer name must be 1-100 characters")
	ErrInvalidCustomerEmail = errors.New("customer email is invalid")
	ErrInvalidDNI           = errors.New("dni must be 1-20 letters, digits or dashes")
	ErrInvalidCode          = errors.New("code must be 4-20 letters or digits")
)

const DateLayout = "2006-01-02"

// Date is a calendar day without time or zone. The zero value is invalid.
type Date struct {
	t time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	lt := t.In(loc)
	return NewDate(lt.Year(), lt.Month(), lt.Day())
}

// DateFromTime reads the day from t's own fields, ignoring its zone.
func DateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string    { return d.t.Format(DateLayout) }
func (d Date) Time() time.Time   { return d.t }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
// LockKey identifies the per-day admission lock shared by both capacity caps.
func (d Date) LockKey() string {
	return "reservations:" + d.String()
}

type CustomerName struct{ value string }

func NewCustomerName(s string) (CustomerName, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 100 {
		return CustomerName{}, ErrInvalidCustomerName
	}
	return CustomerName{value: s}, nil
}

func (n CustomerName) String() string { return n.value }

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct{ value string }

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if len(s) > 100 || !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidCustomerEmail
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }

var dniRegex = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)

// DNI is the customer's national identity number, half of the booking credential.
type DNI struct{ value string }

func NewDNI(s string) (DNI, error) {
	s = strings.TrimSpace(s)
	if !dniRegex.MatchString(s) {
		return DNI{}, ErrInvalidDNI
	}
	return DNI{value: s}, nil
}

func (d DNI) String() string { return d.value }

var codeRegex = regexp.MustCompile(`^[A-Za-z0-9]{4,20}$`)

// Code is the confirmation code handed out at creation. Lookups are exact
// after upper-casing so customers may type it in either case.
type Code struct{ value string }

func NewCode(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !codeRegex.MatchString(s) {
		return Code{}, ErrInvalidCode
	}
	return Code{value: s}, nil
}

func (c Code) String() string { return c.value }

type Customer struct {
	name  CustomerName
	email Email
	dni   DNI
}

func NewCustomer(name, email, dni string) (Customer, error) {
	n, err := NewCustomerName(name)
	if err != nil {
		return Customer{}, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return Customer{}, err
	}
	d, err := NewDNI(dni)
	if err != nil {
		return Customer{}, err
	}
	return Customer{name: n, email: e, dni: d}, nil
}

func (c Customer) Name() CustomerName { return c.name }
func (c Customer) Email() Email       { return c.email }
func (c Customer) DNI() DNI           { return c.dni }

// Credential is the compound key a customer presents to change a booking.
// A mismatch on any part is reported the same way as a missing id.
type Credential struct {
	dni  DNI
	code Code
}

func NewCredential(dni, code string) (Credential, error) {
	d, err := NewDNI(dni)
	if err != nil {
		return Credential{}, err
	}
	c, err := NewCode(code)
	if err != nil {
		return Credential{}, err
	}
	return Credential{dni: d, code: c}, nil
}

func (c Credential) DNI() DNI   { return c.dni }
func (c Credential) Code() Code { return c.code }
