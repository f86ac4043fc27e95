package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"fyyur/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StartTimeLayouts are accepted for a show's start time, the first being
// the canonical rendering.
var StartTimeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04"}

var phonePattern = regexp.MustCompile(`^\d{3}-?\d{3}-?\d{4}$`)

var registerOnce sync.Once

// Errors maps a form field name to the message shown next to it.
type Errors map[string]string

// ValidationError carries every field error of one submission.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return models.ErrValidation }

// register hooks the listing validations into gin's validator engine.
func register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
			_, ok := stateSet[fl.Field().String()]
			return ok
		})
		v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			_, ok := genreSet[fl.Field().String()]
			return ok
		})
		v.RegisterValidation("starttime", func(fl validator.FieldLevel) bool {
			_, err := ParseStartTime(fl.Field().String())
			return err == nil
		})
	})
}

// Bind decodes the request form into form and validates it. Any failure is
// returned as a *ValidationError.
func Bind(r *http.Request, form any) error {
	register()

	err := binding.Form.Bind(r, form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := Errors{}
		for _, fe := range verrs {
			name := fieldName(fe)
			if _, seen := fields[name]; !seen {
				fields[name] = message(fe)
			}
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: Errors{"form": err.Error()}}
}

// ParseStartTime reads a start time in any of StartTimeLayouts, as UTC.
func ParseStartTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range StartTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("start time %q is not in a supported format", value)
}

// ParseCheckbox reads an HTML checkbox value.
func ParseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Choose at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "url":
		return "Invalid URL."
	case "phone":
		return "Invalid phone number, use 123-123-1234."
	case "state":
		return "Not a valid choice."
	case "genre":
		return "Not a valid genre."
	case "number":
		return "Must be a number."
	case "starttime":
		return "Invalid date, use YYYY-MM-DD HH:MM:SS."
	}
	return "Invalid value."
}

// FieldErrors returns the per-field messages carried by err.
func FieldErrors(err error) Errors {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	if err == nil {
		return nil
	}
	return Errors{"form": err.Error()}
}
