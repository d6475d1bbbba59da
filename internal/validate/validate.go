// Package validate wraps go-playground/validator with the planner's request
// rules and turns failures into a field-keyed report:
//
//	{"destination": ["String must contain at least 2 character(s)"]}
//
// Field names come from json tags, so the keys match the request body.
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// dateLayouts are tried in order by ParseDate. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Errors maps a request field to the messages of every rule it broke.
type Errors map[string][]string

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + strings.Join(e[f], ", ")
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates s using its validate tags. It returns nil, an Errors
// report, or the validator's own error when s is not a struct.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	report := Errors{}
	for _, fe := range ve {
		report.Add(fieldKey(fe), message(fe))
	}
	return report
}

// ParseDate accepts the date formats the API takes for timestamps: RFC 3339
// with or without a zone, and bare YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("validate: %q is not a date", s)
}

// MustParseDate is ParseDate for values that already passed the coercedate rule.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// fieldKey drops slice indexes so every element error of emailsToInvite is
// reported under emailsToInvite.
func fieldKey(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		if fe.Kind() == reflect.String {
			return "String must contain at least " + fe.Param() + " character(s)"
		}
		return "Must contain at least " + fe.Param() + " element(s)"
	case "email":
		return "Invalid email"
	case "url":
		return "Invalid url"
	case "uuid":
		return "Invalid uuid"
	case "coercedate":
		return "Invalid date"
	default:
		return "Failed on " + fe.Tag()
	}
}

func get() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation("coercedate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
	})
	return v
}
