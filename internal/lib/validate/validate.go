// Package validate translates validator failures into per-field domain errors.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

// Fields converts the result of validator.Struct. A nil err yields nil.
func Fields(err error) *models.ValidationError {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return models.NewValidationError("input", err.Error())
	}

	verr := &models.ValidationError{}
	for _, fe := range errs {
		verr.Add(fieldName(fe), fieldMessage(fe))
	}

	return verr
}

// Add records msg for field, allocating verr when needed.
func Add(verr *models.ValidationError, field, msg string) *models.ValidationError {
	if verr == nil {
		verr = &models.ValidationError{}
	}
	verr.Add(field, msg)
	return verr
}

// fieldName turns "Draft.Contact.Email" into "contact.email".
func fieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}

	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = snake(p)
	}

	return strings.Join(parts, ".")
}

func snake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// "OwnerID" becomes "owner_id", not "owner_i_d".
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is not valid"
	}
}
