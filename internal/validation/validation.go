// Package validation runs structural checks on commands and renders every
// violated rule as a field-scoped message.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"storeapi/internal/apperror"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// Default messages by tag. {0} is the field label, {1} the tag parameter.
var defaultMessages = map[string]string{
	"required": "{0} is required.",
	"notblank": "{0} is required.",
	"max":      "{0} must not exceed {1} characters.",
	"gt":       "{0} must be greater than {1}.",
	"gte":      "{0} must be at least {1}.",
}

// Validator wraps validator.Validate with English messages.
type Validator struct {
	validate  *validator.Validate
	trans     ut.Translator
	overrides map[string]string
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides messages per "StructField.tag" key, e.g.
// "Name.notblank". Overrides are used verbatim.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		for k, msg := range messages {
			v.overrides[k] = msg
		}
	}
}

// New builds a Validator. Field labels come from the `label` struct tag and
// fall back to the Go field name.
func New(opts ...Option) *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	for tag, text := range defaultMessages {
		if err := registerMessage(validate, trans, tag, text); err != nil {
			panic(fmt.Sprintf("register %s translation: %v", tag, err))
		}
	}

	v := &Validator{
		validate:  validate,
		trans:     trans,
		overrides: make(map[string]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Struct validates s. It returns nil, an *apperror.Error of kind validation
// listing every violated rule, or the validator's own error when s cannot be
// validated at all.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: v.message(fe),
		})
	}
	return apperror.Validation(fields)
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := v.overrides[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Translate(v.trans)
}

func registerMessage(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	return validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
