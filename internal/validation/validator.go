package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"cobible/internal/domain"
	"cobible/internal/util"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request bodies and dataset records via struct tags.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns a process-wide Validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}

// NewValidator creates a validator with English messages keyed by json field names.
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{
		validate: validate,
		trans:    trans,
	}
}

// Struct validates s and returns one entry per failing field, or nil.
func (v *Validator) Struct(s any) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domain.ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	fields := make(domain.ValidationErrors, 0, len(validationErrs))
	for _, e := range validationErrs {
		fields = append(fields, domain.ValidationError{
			Field:   e.Field(),
			Message: e.Translate(v.trans),
		})
	}
	return fields
}

// SessionID validates a session identifier path parameter.
func (v *Validator) SessionID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{{Field: "id", Message: "id is a required field"}}
	}
	if !util.IsULID(id) {
		return domain.ValidationErrors{{Field: "id", Message: "id must be a valid session id"}}
	}
	return nil
}

// Var validates a single value such as a query parameter against tag.
func (v *Validator) Var(field string, value any, tag string) domain.ValidationErrors {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domain.ValidationErrors{{Field: field, Message: err.Error()}}
	}

	fields := make(domain.ValidationErrors, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Var has no field name, so the translation starts with the value placeholder left empty.
		fields = append(fields, domain.ValidationError{
			Field:   field,
			Message: field + e.Translate(v.trans),
		})
	}
	return fields
}
