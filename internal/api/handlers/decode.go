package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
)

const maxBodyBytes = 1 << 20

var (
	validate   = validator.New(validator.WithRequiredStructEnabled())
	translator ut.Translator
)

func init() {
	locale := ru.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("ru")
	if err := ru_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(fmt.Sprintf("handlers: register validator translations: %v", err))
	}

	// в сообщениях используем имена полей из JSON
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// DecodeJSON читает тело запроса в dst и проверяет теги validate.
// Неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("decode body: unexpected data after JSON object")
	}

	return Validate(dst)
}

// Validate проверяет структуру по тегам validate
func Validate(v any) error {
	return validate.Struct(v)
}

// ValidationMessage текст первой ошибки валидации на русском;
// для прочих ошибок возвращает fallback
func ValidationMessage(err error, fallback string) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return validationErrs[0].Translate(translator)
	}
	return fallback
}
