package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

var (
	validate   *validator.Validate
	translator ut.Translator
	initOnce   sync.Once
)

const requiredText = "{0} is required"

func initValidator() {
	validate = validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterTranslation("required", translator,
		func(t ut.Translator) error { return t.Add("required", requiredText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T("required", fe.Field())
			return s
		},
	)
}

// Validator exposes the shared validator instance.
func Validator() *validator.Validate {
	initOnce.Do(initValidator)
	return validate
}

// ValidateStruct returns field -> messages, or nil when v is valid.
func ValidateStruct(v any) map[string][]string {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	return ValidationMessages(err)
}

// ValidationMessages converts validator errors into field -> messages.
func ValidationMessages(err error) map[string][]string {
	Validator()
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		out[field] = append(out[field], fe.Translate(translator))
	}
	return out
}

// ParseBody binds a JSON body into req and validates it.
// When ok is false the error response has already been written.
func ParseBody[T any](c *fiber.Ctx, req *T) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := ValidateStruct(req); errs != nil {
		return false, JsonValidationError(c, errs)
	}
	return true, nil
}
