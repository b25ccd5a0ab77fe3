package utils

import (
	"fmt"
	"unicode/utf8"

	"github.com/adivinatobi/adivinatobi/shared/config"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/google/uuid"
)

// TextValidator checks user-provided text against the configured limits.
// Callers trim input before validating.
type TextValidator struct {
	limits config.Limits
}

func NewTextValidator(limits config.Limits) *TextValidator {
	return &TextValidator{limits: limits}
}

func (v *TextValidator) UserName(name string) error {
	return required("name", name, v.limits.UserNameMaxLen)
}

func (v *TextValidator) Question(question string) error {
	return required("question", question, v.limits.QuestionMaxLen)
}

// Description is optional, only its length is checked.
func (v *TextValidator) Description(description string) error {
	return maxLen("description", description, v.limits.DescriptionMaxLen)
}

func (v *TextValidator) PredictionText(text string) error {
	return required("prediction text", text, v.limits.PredictionMaxLen)
}

func required(field, value string, limit int) error {
	if value == "" {
		return &errors.ValidationError{Message: fmt.Sprintf("%s must not be empty", field)}
	}
	return maxLen(field, value, limit)
}

// a non-positive limit disables the check
func maxLen(field, value string, limit int) error {
	if limit > 0 && utf8.RuneCountInString(value) > limit {
		return &errors.ValidationError{Message: fmt.Sprintf("%s is too long (max %d characters)", field, limit)}
	}
	return nil
}

// NewId returns a fresh identifier for threads and predictions.
func NewId() string {
	return uuid.NewString()
}
