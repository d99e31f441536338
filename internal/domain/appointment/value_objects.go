package appointment

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrCustomerNameTooLong  = errors.New("customer name is too long (max 100 characters)")
	ErrInvalidEmail         = errors.New("customer email is invalid")
	ErrPhoneTooLong         = errors.New("customer phone is too long (max 30 characters)")
	ErrNotesTooLong         = errors.New("notes are too long (max 1000 characters)")
)

const (
	MaxCustomerNameLength = 100
	MaxPhoneLength        = 30
	MaxNotesLength        = 1000
)

type Customer struct {
	name  string
	email string
	phone string
	notes string
}

func NewCustomer(name, email, phone, notes string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Customer{}, ErrCustomerNameRequired
	}
	if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return Customer{}, ErrCustomerNameTooLong
	}
	if err := validateEmail(email); err != nil {
		return Customer{}, err
	}
	if len(phone) > MaxPhoneLength {
		return Customer{}, ErrPhoneTooLong
	}
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return Customer{}, ErrNotesTooLong
	}
	return Customer{name: name, email: strings.ToLower(email), phone: phone, notes: notes}, nil
}

// ReconstructCustomer skips validation for rows read back from storage.
func ReconstructCustomer(name, email, phone, notes string) Customer {
	return Customer{name: name, email: email, phone: phone, notes: notes}
}

// A bare address is required; display-name forms are rejected.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }
func (c Customer) Notes() string { return c.notes }
