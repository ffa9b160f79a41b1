package screen

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gerenciador/painel/internal/core/domain"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("finite", finite); err != nil {
		panic(err)
	}
	return v
}

// finite rejects the infinities and NaN that strconv.ParseFloat accepts.
func finite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// FormError carries one message per offending form field.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	return "validation: " + e.Summary()
}

func (e *FormError) Unwrap() error { return domain.ErrValidation }

// Summary lists the messages sorted by field name.
func (e *FormError) Summary() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// Validate runs the struct tags of v and turns failures into a *FormError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fe := &FormError{Fields: make(map[string]string, len(ve))}
	for _, f := range ve {
		fe.Fields[f.Field()] = fieldError(f)
	}
	return fe
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " é obrigatório"
	case "email":
		return field + " deve ser um e-mail válido"
	case "max":
		return fmt.Sprintf("%s aceita no máximo %s caracteres", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s exige ao menos %s caracteres", field, fe.Param())
	case "finite":
		return field + " deve ser um número finito"
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s inválido (%s)", field, fe.Tag())
	}
}
