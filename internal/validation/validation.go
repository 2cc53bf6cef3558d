// Package validation checks form drafts against their struct tags and turns
// failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Errors maps a field's JSON name to its first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, e[f])
	}
	return strings.Join(parts, "; ")
}

// AsErrors unwraps err into field errors.
func AsErrors(err error) (Errors, bool) {
	var fe Errors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// messages overrides the generated text for specific field/rule pairs.
var messages = map[string]string{
	"phone.min":     "Phone number must be at least 10 digits",
	"phone.max":     "Phone number cannot exceed 10 digits",
	"phone.numeric": "Phone number must contain only digits",
	"rating.min":    "Please select a rating",
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a validator whose notfuture rule compares against now.
// A nil now uses time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	must(v.validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	}))
	must(v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			// isodate reports it.
			return true
		}
		return !d.After(v.today())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// today is midnight of the current local date, expressed in UTC so it
// compares directly with time.Parse results.
func (v *Validator) today() time.Time {
	y, m, d := v.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Struct validates draft. It returns nil or an Errors value.
func (v *Validator) Struct(draft any) error {
	err := v.validate.Struct(draft)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	t := reflect.TypeOf(draft)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make(Errors, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe, label(t, fe))
	}
	return out
}

func label(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if l := sf.Tag.Get("label"); l != "" {
			return l
		}
	}
	return humanize(fe.Field())
}

func message(fe validator.FieldError, name string) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	str := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		if str {
			return fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "min":
		if str {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "email":
		return "Invalid email address"
	case "numeric":
		return name + " must contain only digits"
	case "isodate":
		return "Invalid date format"
	case "notfuture":
		return name + " cannot be in the future"
	default:
		return name + " is invalid"
	}
}

// humanize turns "startDate" into "Start date".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
