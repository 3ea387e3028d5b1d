package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"nativedelight/internal/apperrors"
)

const (
	missingFieldsHint = "Please fill in all fields."
	invalidPhoneHint  = "Please enter a valid Nigerian phone number."
)

var (
	ErrMissingFields = errors.New("missing fields")
	ErrInvalidPhone  = errors.New("invalid phone")
)

// Nigerian mobile number: +234 or 0, then [789][01] and eight more digits.
var ngPhonePattern = regexp.MustCompile(`^(\+234|0)[789][01]\d{8}$`)

// Form is the contact and delivery details collected before payment.
type Form struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required,ngphone"`
	Address string `json:"address" validate:"required"`
}

func (f Form) normalized() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
	}
}

func ValidPhone(phone string) bool {
	return ngPhonePattern.MatchString(phone)
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("ngphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return v
}

// Validate reports missing fields before a malformed phone number. The
// returned error is a validation *apperrors.Error wrapping ErrMissingFields
// or ErrInvalidPhone.
func (f Form) Validate() error {
	err := formValidator.Struct(f.normalized())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(apperrors.CodeInternal, err, "form validation failed")
	}

	var missing, malformed []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		malformed = append(malformed, fe.Field())
	}

	if len(missing) > 0 {
		return apperrors.Wrap(apperrors.CodeValidation, ErrMissingFields, missingFieldsHint).
			WithDetails(map[string]any{"fields": missing, "reason": ErrMissingFields.Error()})
	}
	return apperrors.Wrap(apperrors.CodeValidation, ErrInvalidPhone, invalidPhoneHint).
		WithDetails(map[string]any{"fields": malformed, "reason": ErrInvalidPhone.Error()})
}
