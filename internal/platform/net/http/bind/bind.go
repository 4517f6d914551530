// Package bind decodes query strings with go-playground/form and validates them with go-playground/validator
package bind

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/platform/logger"
)

// ValidatorSvc holds the validator, its translator and the query decoder
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
	Query      *form.Decoder
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the singleton, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		// messages name fields the way clients spell them
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "query"} {
				tag, _, _ := strings.Cut(fld.Tag.Get(key), ",")
				if tag != "" && tag != "-" {
					return tag
				}
			}
			return fld.Name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")
		registerShort(v, trans, "oneof", "{0} must be one of [{1}]")

		dec := form.NewDecoder()
		dec.SetTagName("query")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans, Query: dec}
	})
	return vSvc
}

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// ParseQuery decodes the URL query into T using `query` tags, then validates it
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T
	if err := Get().Query.Decode(&dst, r.URL.Query()); err != nil {
		var de form.DecodeErrors
		if errors.As(err, &de) {
			for field, fe := range de {
				return zero, perr.WithField(perr.InvalidArgf("%s: %v", field, fe), field)
			}
		}
		return zero, perr.InvalidArgf("invalid query: %v", err)
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct validation and maps the first failure to a validation error
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fe.Translate(Get().Translator)
	}
	return "", err.Error()
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
