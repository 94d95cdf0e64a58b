package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the human readable messages in the order they were found.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no error was collected, so callers can `return errs.Err()`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Messages maps "<field>.<tag>" to the message reported when that rule fails,
// e.g. "name.min" -> "Name must be at least 2 characters long".
type Messages map[string]string

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "date", func(fl playground.FieldLevel) bool {
		_, ok := IsValidDate(fl.Field().String())
		return ok
	})
	mustRegister(v, "clock", func(fl playground.FieldLevel) bool {
		return IsValidClock(fl.Field().String())
	})
	mustRegister(v, "month", func(fl playground.FieldLevel) bool {
		_, ok := IsValidMonth(fl.Field().String())
		return ok
	})
	mustRegister(v, "positive", func(fl playground.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	mustRegister(v, "dp2", func(fl playground.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && HasMaxDecimalPlaces(d, 2)
	})

	return v
}

func mustRegister(v *playground.Validate, tag string, fn playground.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("register validation " + tag + ": " + err.Error())
	}
}

// Struct validates s against its `validate` tags and translates every failed
// rule into a ValidationError using messages. Rules without an entry fall back
// to a generic "<field> is invalid" message.
func Struct(s any, messages Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), translate(fe, messages))
	}
	return errs
}

func translate(fe playground.FieldError, messages Messages) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:([0-5]\d))?$`)

// IsValidClock accepts HH:MM or HH:MM:SS on a 24-hour clock.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// NormalizeClock expands HH:MM to HH:MM:SS. Invalid input is returned as is.
func NormalizeClock(s string) string {
	if IsValidClock(s) && len(s) == 5 {
		return s + ":00"
	}
	return s
}

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValidMonth parses YYYY-MM and returns the first day of that month in UTC.
func IsValidMonth(s string) (time.Time, bool) {
	if !monthRegex.MatchString(s) {
		return time.Time{}, false
	}
	month, err := time.Parse("2006-01", s)
	return month, err == nil
}

// HasMaxDecimalPlaces reports whether d carries at most places significant fractional digits.
func HasMaxDecimalPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

type Date time.Time

// ParseDate parses a date string in "YYYY-MM-DD" format and returns a Date type.
func ParseDate(dateStr string) (Date, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

// Before reports whether the date d is before u.
func (d Date) Before(u Date) bool {
	return time.Time(d).Before(time.Time(u))
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}
