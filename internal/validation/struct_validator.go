package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Validator returns the shared struct validator with the custom tags registered
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		v.RegisterValidation("metric", isKnownMetric)
		v.RegisterValidation("team", isTeamAbbrev)
		v.RegisterValidation("seasonid", isSeasonID)

		// Use yaml tag names in error messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		instance = v
	})
	return instance
}

// Struct validates s and folds every field failure into one VALIDATION error
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "invalid value", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatValidationError(fe))
	}

	appErr := apperrors.NewAppValidationError(strings.Join(messages, "; "))
	appErr.WithContext("fields", len(fieldErrs))
	return appErr
}

func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	tag := err.Tag()
	param := err.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Replace(param, " ", ", ", -1))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "metric":
		return fmt.Sprintf("%s has unknown metric code %q", field, err.Value())
	case "team":
		return fmt.Sprintf("%s must be 2-3 upper-case letters", field)
	case "seasonid":
		return fmt.Sprintf("%s must be an 8-digit season id such as 20242025", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

// Custom validators

func isKnownMetric(fl validator.FieldLevel) bool {
	return domain.Metric(fl.Field().String()).Known()
}

func isTeamAbbrev(fl validator.FieldLevel) bool {
	team := fl.Field().String()
	if len(team) < 2 || len(team) > 3 {
		return false
	}
	for _, ch := range team {
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}
	return true
}

// isSeasonID accepts ids like 20242025 where the end year follows the start year
func isSeasonID(fl validator.FieldLevel) bool {
	id := fl.Field().Int()
	if id < 10000000 || id > 99999999 {
		return false
	}
	start, end := id/10000, id%10000
	return end == start+1
}
