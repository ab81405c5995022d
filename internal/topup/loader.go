package topup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	collectionUsers     = "users"
	collectionCompanies = "companies"
)

// userRecord mirrors User with pointer fields so absent keys can be told
// apart from zero values.
type userRecord struct {
	ID           *int64   `json:"id" validate:"required"`
	FirstName    *string  `json:"first_name" validate:"required"`
	LastName     *string  `json:"last_name" validate:"required"`
	Email        *string  `json:"email" validate:"required"`
	EmailStatus  *bool    `json:"email_status" validate:"required"`
	ActiveStatus *bool    `json:"active_status" validate:"required"`
	CompanyID    *int64   `json:"company_id" validate:"required"`
	Tokens       *float64 `json:"tokens" validate:"required"`
}

func (r userRecord) user() User {
	return User{
		ID:           *r.ID,
		FirstName:    *r.FirstName,
		LastName:     *r.LastName,
		Email:        *r.Email,
		EmailStatus:  *r.EmailStatus,
		ActiveStatus: *r.ActiveStatus,
		CompanyID:    *r.CompanyID,
		Tokens:       *r.Tokens,
	}
}

type companyRecord struct {
	ID    *int64   `json:"id" validate:"required"`
	Name  *string  `json:"name" validate:"required"`
	TopUp *float64 `json:"top_up" validate:"required"`
}

func (r companyRecord) company() Company {
	return Company{ID: *r.ID, Name: *r.Name, TopUp: *r.TopUp}
}

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadUsers reads and validates the users dataset at path.
func LoadUsers(path string) ([]User, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	users, err := ParseUsers(data)
	return users, withPath(err, path)
}

// LoadCompanies reads and validates the companies dataset at path.
func LoadCompanies(path string) ([]Company, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	companies, err := ParseCompanies(data)
	return companies, withPath(err, path)
}

// ParseUsers decodes a JSON array of user records.
func ParseUsers(data []byte) ([]User, error) {
	records, err := decodeRecords[userRecord](collectionUsers, data)
	if err != nil {
		return nil, err
	}
	users := make([]User, len(records))
	for i, rec := range records {
		users[i] = rec.user()
	}
	return users, nil
}

// ParseCompanies decodes a JSON array of company records.
func ParseCompanies(data []byte) ([]Company, error) {
	records, err := decodeRecords[companyRecord](collectionCompanies, data)
	if err != nil {
		return nil, err
	}
	companies := make([]Company, len(records))
	for i, rec := range records {
		companies[i] = rec.company()
	}
	return companies, nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindFileRead, Path: path, Err: err}
	}
	return data, nil
}

func decodeRecords[T any](collection string, data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return nil, &Error{Kind: KindParse, Err: fmt.Errorf("%s: offset %d: %w", collection, syntaxErr.Offset, err)}
		case errors.As(err, &typeErr):
			return nil, &Error{Kind: KindShape, Err: fmt.Errorf("%s: %w", collection, err)}
		default:
			return nil, &Error{Kind: KindParse, Err: fmt.Errorf("%s: %w", collection, err)}
		}
	}
	if records == nil {
		return nil, &Error{Kind: KindShape, Err: fmt.Errorf("%s: expected a JSON array, got null", collection)}
	}
	for i := range records {
		if err := recordValidator.Struct(records[i]); err != nil {
			return nil, &Error{Kind: KindShape, Err: fieldError(collection, i, err)}
		}
	}
	return records, nil
}

func fieldError(collection string, index int, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return FieldError{Collection: collection, Index: index, Field: validationErrs[0].Field()}
	}
	return fmt.Errorf("%s[%d]: %w", collection, index, err)
}

func withPath(err error, path string) error {
	var topupErr *Error
	if errors.As(err, &topupErr) && topupErr.Path == "" {
		topupErr.Path = path
	}
	return err
}
