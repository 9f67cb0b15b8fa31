// Package validators builds formstate field validators from go-playground
// rule expressions and a few hand-rolled primitives. Messages stay opaque to
// the container: every factory takes the failure text as caller input.
package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formstate/pkg/formstate"
)

var ruleValidate *validator.Validate

func init() {
	ruleValidate = validator.New()
}

// CheckRule reports whether the engine accepts the rule expression. The
// engine panics on undefined tags and malformed parameters, which is fine
// for expressions written in code but not for ones loaded from documents;
// CheckRule converts those panics into errors so callers can reject an
// expression before it reaches a live form.
func CheckRule(rule string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validators: invalid rule %q: %v", rule, r)
		}
	}()
	_ = ruleValidate.Var("", rule)
	return nil
}

// Rule builds a validator from a go-playground rule expression such as
// "min=18", "max=120", "email", or "len=4". A nil value fails the rule.
// The expression is trusted; run untrusted ones through CheckRule first.
func Rule(rule, message string) formstate.Validator {
	return func(value any, _ formstate.FieldSchema, _ *formstate.Form) string {
		if value == nil {
			return message
		}
		if err := ruleValidate.Var(value, rule); err != nil {
			return message
		}
		return ""
	}
}

// Required fails for nil values, empty or whitespace-only strings, and empty
// slices, maps, and arrays.
func Required(message string) formstate.Validator {
	return func(value any, _ formstate.FieldSchema, _ *formstate.Form) string {
		if isEmpty(value) {
			return message
		}
		return ""
	}
}

// Pattern fails unless the value's string form matches the regular
// expression. An invalid expression yields a validator that always fails.
func Pattern(expr, message string) formstate.Validator {
	re, err := regexp.Compile(expr)
	return func(value any, _ formstate.FieldSchema, _ *formstate.Form) string {
		if err != nil {
			return message
		}
		s, ok := value.(string)
		if !ok {
			s = fmt.Sprint(value)
		}
		if !re.MatchString(s) {
			return message
		}
		return ""
	}
}

// OneOf fails unless the value's string form matches one of the options.
func OneOf(message string, options ...string) formstate.Validator {
	rule := "oneof=" + strings.Join(options, " ")
	return Rule(rule, message)
}

// Compose chains validators; the first non-empty message wins.
func Compose(validators ...formstate.Validator) formstate.Validator {
	return func(value any, field formstate.FieldSchema, form *formstate.Form) string {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if msg := v(value, field, form); msg != "" {
				return msg
			}
		}
		return ""
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
