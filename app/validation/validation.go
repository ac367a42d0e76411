// Package validation sanitizes and checks submitted form fields.
//
// A Schema is an ordered list of fields, each with an ordered list of Rules.
// Fields are independent of each other and every failure is collected, so a form
// can be redisplayed with all of its errors at once.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Rule maps a raw value to its sanitized form, or reports why it is invalid.
// A failing rule's value is ignored and the input is passed to the next rule.
type Rule func(value string) (string, error)

// Field names a form field and the rules applied to it, in order.
type Field struct {
	Name  string
	Rules []Rule
}

type Schema []Field

// Input holds the raw submitted values keyed by field name.
type Input map[string]string

// Values holds sanitized values keyed by field name.
type Values map[string]string

// Apply runs every field's rules and returns the sanitized values with all failures.
// Absent fields are treated as empty strings.
func (s Schema) Apply(in Input) (Values, Errors) {
	out := make(Values, len(s))
	var errs Errors

	for _, field := range s {
		value := in[field.Name]
		for _, rule := range field.Rules {
			sanitized, err := rule(value)
			if err != nil {
				errs = append(errs, FieldError{Field: field.Name, Message: err.Error()})
				continue
			}
			value = sanitized
		}
		out[field.Name] = value
	}

	return out, errs
}

// Trim removes surrounding whitespace.
func Trim(value string) (string, error) {
	return strings.TrimSpace(value), nil
}

// Escape replaces HTML special characters with entities.
func Escape(value string) (string, error) {
	return htmlEscaper.Replace(value), nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Unescape reverses Escape. Forms use it to put stored values back into inputs.
func Unescape(value string) string {
	return htmlUnescaper.Replace(value)
}

var htmlUnescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&#x27;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&#x2F;", "/",
	"&#x5C;", `\`,
	"&#96;", "`",
	"&amp;", "&",
)

// Required fails on an empty value.
func Required(message string) Rule {
	return func(value string) (string, error) {
		if err := validate.Var(value, "required"); err != nil {
			return value, errors.New(message)
		}
		return value, nil
	}
}

// MinLength fails when value has fewer than n characters.
func MinLength(n int, message string) Rule {
	tag := fmt.Sprintf("min=%d", n)
	return func(value string) (string, error) {
		if err := validate.Var(value, tag); err != nil {
			return value, errors.New(message)
		}
		return value, nil
	}
}

// MaxLength fails when value has more than n characters.
func MaxLength(n int, message string) Rule {
	tag := fmt.Sprintf("max=%d", n)
	return func(value string) (string, error) {
		if err := validate.Var(value, tag); err != nil {
			return value, errors.New(message)
		}
		return value, nil
	}
}

// Float fails unless value is a decimal number greater than or equal to min.
// The sanitized value is the canonical decimal representation.
func Float(min decimal.Decimal, message string) Rule {
	return func(value string) (string, error) {
		if err := validate.Var(value, "required"); err != nil {
			return value, errors.New(message)
		}
		d, err := decimal.NewFromString(value)
		if err != nil || d.LessThan(min) {
			return value, errors.New(message)
		}
		return d.String(), nil
	}
}

// Precision fails when value exceeds max or has more than places fractional digits.
// Values that are not decimals are left to Float.
func Precision(max decimal.Decimal, places int32, message string) Rule {
	return func(value string) (string, error) {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return value, nil
		}
		if d.GreaterThan(max) || !d.Equal(d.Truncate(places)) {
			return value, errors.New(message)
		}
		return value, nil
	}
}

// Int fails unless value is an integer greater than or equal to min.
func Int(min int, message string) Rule {
	tag := fmt.Sprintf("gte=%d", min)
	return func(value string) (string, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return value, errors.New(message)
		}
		if err := validate.Var(n, tag); err != nil {
			return value, errors.New(message)
		}
		return strconv.Itoa(n), nil
	}
}

// List normalizes a field that may hold one or many values.
// nil yields an empty slice, a string a single element slice, and a []string is returned as is.
func List(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return []string{v}
	case []string:
		if v == nil {
			return []string{}
		}
		return v
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Each applies rules to every element of values and reports failures under field.
func Each(field string, values []string, rules ...Rule) ([]string, Errors) {
	out := make([]string, 0, len(values))
	var errs Errors
	for _, raw := range values {
		v, fieldErrs := Schema{{Name: field, Rules: rules}}.Apply(Input{field: raw})
		out = append(out, v[field])
		errs = append(errs, fieldErrs...)
	}
	return out, errs
}
