package omada

import (
	"errors"
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	vd "github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// ValidationError aggregates the per-field messages produced when a
// ClientConfig fails validation.
type ValidationError struct {
	Root     error
	Messages map[string]string
}

func (v *ValidationError) Error() string {
	msg := "omada: invalid client configuration:\n"
	for field, message := range v.Messages {
		msg += fmt.Sprintf("  %s: %s\n", field, message)
	}
	return msg
}

func (v *ValidationError) Unwrap() error { return v.Root }

type validator struct {
	validate *vd.Validate
	trans    ut.Translator
}

func newValidator() (*validator, error) {
	validate := vd.New(vd.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("omada: missing english validator translations")
	}
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("omada: registering validator translations: %w", err)
	}
	return &validator{validate: validate, trans: trans}, nil
}

func (v *validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var errs vd.ValidationErrors
		if errors.As(err, &errs) {
			return &ValidationError{Root: err, Messages: errs.Translate(v.trans)}
		}
		return err
	}
	return nil
}
