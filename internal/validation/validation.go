// Package validation checks form input against per-field rules.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule constrains a single field. Zero values disable a check.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp

	// Message overrides the default text for the required and pattern checks.
	Message string
}

// Result is the outcome of Validate.
type Result struct {
	Valid  bool              `json:"isValid"`
	Errors map[string]string `json:"errors"`
}

// Validate applies rules to data. For each field only the first failing
// check is reported, in the order required, minimum length, maximum length,
// pattern. Length and pattern checks are skipped for empty values.
func Validate(data map[string]string, rules map[string]Rule) Result {
	errs := make(map[string]string)

	for field, rule := range rules {
		if msg, ok := check(field, data[field], rule); !ok {
			errs[field] = msg
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func check(field, value string, rule Rule) (string, bool) {
	length := utf8.RuneCountInString(value)

	switch {
	case rule.Required && value == "":
		if rule.Message != "" {
			return rule.Message, false
		}
		return fmt.Sprintf("%s은(는) 필수 입력 항목입니다.", field), false
	case rule.MinLength > 0 && value != "" && length < rule.MinLength:
		return fmt.Sprintf("최소 %d자 이상 입력해주세요.", rule.MinLength), false
	case rule.MaxLength > 0 && value != "" && length > rule.MaxLength:
		return fmt.Sprintf("최대 %d자까지 입력 가능합니다.", rule.MaxLength), false
	case rule.Pattern != nil && value != "" && !rule.Pattern.MatchString(value):
		if rule.Message != "" {
			return rule.Message, false
		}
		return "올바른 형식이 아닙니다.", false
	}
	return "", true
}

// ParseQuery decodes a query string such as "a=1&b=2" into a map. A leading
// "?" is ignored, keys without a value map to "", and for repeated keys the
// last value wins. Pairs that fail to decode are kept verbatim.
func ParseQuery(raw string) map[string]string {
	params := make(map[string]string)
	raw = strings.TrimPrefix(raw, "?")

	for _, pair := range strings.Split(raw, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		params[unescape(key)] = unescape(value)
	}
	return params
}

func unescape(s string) string {
	if out, err := url.QueryUnescape(s); err == nil {
		return out
	}
	return s
}
