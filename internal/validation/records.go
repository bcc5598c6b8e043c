package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Violation is one failed struct-tag constraint on a record.
type Violation struct {
	Field string
	Tag   string
	Value string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s failed %q (value %s)", v.Field, v.Tag, v.Value)
}

var (
	recordValidator     *validator.Validate
	recordValidatorOnce sync.Once
)

// Validator returns the shared validator with the domain tags registered:
// score, component, salary, age and trimmed.
func Validator() *validator.Validate {
	recordValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		must(v.RegisterValidation("score", floatRange(domain.MinScore, domain.MaxScore)))
		must(v.RegisterValidation("salary", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return f == domain.Missing || f >= 0
		}))
		must(v.RegisterValidation("component", intRange(0, 9)))
		must(v.RegisterValidation("age", intRange(0, 120)))
		must(v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return strings.TrimSpace(s) == s
		}))

		recordValidator = v
	})
	return recordValidator
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("failed to register validation: %v", err))
	}
}

// floatRange accepts the missing sentinel or a value in [lo, hi].
func floatRange(lo, hi float64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == domain.Missing || (f >= lo && f <= hi)
	}
}

// intRange accepts the missing sentinel or a value in [lo, hi].
func intRange(lo, hi int64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		i := fl.Field().Int()
		return i == domain.Missing || (i >= lo && i <= hi)
	}
}

// Record validates a domain record and lists every violated constraint.
// A nil result means the record is valid.
func Record(rec any) []Violation {
	err := Validator().Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Field: "", Tag: "invalid", Value: err.Error()}}
	}

	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
	}
	return out
}
