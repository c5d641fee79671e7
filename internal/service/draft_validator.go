package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/model"
)

// DraftValidator checks the article form at submit time. Every field is
// evaluated on its own so one bad field never hides another.
type DraftValidator struct {
	validate *validator.Validate
}

// NewDraftValidator creates a draft validator with the category rule registered.
func NewDraftValidator() *DraftValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})
	return &DraftValidator{validate: v}
}

// Validator exposes the underlying validator so request binding shares the
// same registered rules.
func (v *DraftValidator) Validator() *validator.Validate {
	return v.validate
}

// Validate returns a *errors.ValidationError listing every violated rule, or nil.
func (v *DraftValidator) Validate(fields model.DraftFields) error {
	err := v.validate.Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate draft: %w", err)
	}

	violations := make([]apperrors.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, apperrors.FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: violationMessage(fe),
		})
	}
	return apperrors.NewValidationError(violations)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "title.required":
		return "Title is required"
	case "title.min":
		return fmt.Sprintf("Title must be at least %s characters", fe.Param())
	case "category.required", "category.category":
		return "Please select a category"
	case "excerpt.required":
		return "Excerpt is required"
	case "excerpt.max":
		return fmt.Sprintf("Excerpt must be at most %s characters", fe.Param())
	case "tags.required":
		return "At least one tag is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
