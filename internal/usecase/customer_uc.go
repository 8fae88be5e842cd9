package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/crmgraph/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^(\+?\d{10,15}|\d{3}-\d{3}-\d{4})$`)
)

const (
	msgEmailExists     = "Email already exists"
	msgInvalidPhone    = "Phone must be in +1234567890 or 123-456-7890 format"
	msgNameRequired    = "Name is required"
	msgEmailRequired   = "Email is required"
	msgInvalidEmail    = "Invalid email format"
	msgCustomerCreated = "Customer created successfully"
)

type CreateCustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CustomerResult carries either the created customer or the list of
// user-correctable reasons it was rejected, never both.
type CustomerResult struct {
	Customer *domain.Customer `json:"customer"`
	Message  string           `json:"message"`
	Errors   []string         `json:"errors"`
}

type BulkCustomersResult struct {
	Customers []domain.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

type CustomerUC struct {
	Customers domain.CustomerRepo
}

// Create validates the input, pre-checks the email for a friendly message,
// and inserts. The pre-check is advisory: a duplicate that races past it is
// rejected by the unique constraint and reported the same way.
func (uc *CustomerUC) Create(ctx context.Context, in CreateCustomerInput) (*CustomerResult, error) {
	if errs := validateCustomer(in); len(errs) > 0 {
		return &CustomerResult{Errors: errs}, nil
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := uc.Customers.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return &CustomerResult{Errors: []string{msgEmailExists}}, nil
	}

	c := &domain.Customer{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(in.Name),
		Email: email,
		Phone: strings.TrimSpace(in.Phone),
	}
	if err := uc.Customers.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return &CustomerResult{Errors: []string{msgEmailExists}}, nil
		}
		return nil, err
	}
	return &CustomerResult{Customer: c, Message: msgCustomerCreated, Errors: []string{}}, nil
}

// BulkCreate processes each row independently: every row's validate+insert is
// atomic on its own, so a bad row is reported and skipped without undoing
// rows already committed in the same batch.
func (uc *CustomerUC) BulkCreate(ctx context.Context, in []CreateCustomerInput) (*BulkCustomersResult, error) {
	res := &BulkCustomersResult{Customers: []domain.Customer{}, Errors: []string{}}
	for _, row := range in {
		one, err := uc.Create(ctx, row)
		if err != nil {
			return nil, err
		}
		if len(one.Errors) > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", row.Email, strings.Join(one.Errors, ", ")))
			continue
		}
		res.Customers = append(res.Customers, *one.Customer)
	}
	return res, nil
}

func (uc *CustomerUC) List(ctx context.Context) ([]domain.Customer, error) {
	return uc.Customers.List(ctx)
}

func validateCustomer(in CreateCustomerInput) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, msgNameRequired)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, msgEmailRequired)
	} else if !emailRe.MatchString(email) {
		errs = append(errs, msgInvalidEmail)
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" && !phoneRe.MatchString(phone) {
		errs = append(errs, msgInvalidPhone)
	}
	return errs
}
