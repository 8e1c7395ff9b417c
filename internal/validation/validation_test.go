package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func TestValidate(t *testing.T) {
	rules := map[string]Rule{
		"userId":   {Required: true, MinLength: 3, MaxLength: 10},
		"password": {Required: true, MinLength: 6, Message: "비밀번호를 입력해주세요."},
		"email":    {Pattern: emailPattern},
	}

	tests := []struct {
		name string
		data map[string]string
		want map[string]string
	}{
		{
			name: "valid",
			data: map[string]string{"userId": "admin", "password": "admin123", "email": "admin@krc.co.kr"},
			want: map[string]string{},
		},
		{
			name: "required with default and custom message",
			data: map[string]string{},
			want: map[string]string{
				"userId":   "userId은(는) 필수 입력 항목입니다.",
				"password": "비밀번호를 입력해주세요.",
			},
		},
		{
			name: "length limits",
			data: map[string]string{"userId": "ab", "password": "12345"},
			want: map[string]string{
				"userId":   "최소 3자 이상 입력해주세요.",
				"password": "최소 6자 이상 입력해주세요.",
			},
		},
		{
			name: "max length counts characters",
			data: map[string]string{"userId": "관리자관리자관리자관리", "password": "secret1"},
			want: map[string]string{"userId": "최대 10자까지 입력 가능합니다."},
		},
		{
			name: "pattern",
			data: map[string]string{"userId": "admin", "password": "admin123", "email": "not-an-email"},
			want: map[string]string{"email": "올바른 형식이 아닙니다."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.data, rules)
			assert.Equal(t, tt.want, res.Errors)
			assert.Equal(t, len(tt.want) == 0, res.Valid)
		})
	}
}

func TestValidate_OptionalEmptyFieldSkipsChecks(t *testing.T) {
	res := Validate(map[string]string{}, map[string]Rule{
		"phone": {MinLength: 9, Pattern: regexp.MustCompile(`^\d+$`)},
	})
	assert.True(t, res.Valid)
}

func TestParseQuery(t *testing.T) {
	got := ParseQuery("?page=2&search=%EB%86%8D%EC%97%85&flag&=orphan&page=3")

	assert.Equal(t, map[string]string{
		"page":   "3",
		"search": "농업",
		"flag":   "",
	}, got)

	assert.Empty(t, ParseQuery(""))
	assert.Equal(t, map[string]string{"bad": "%zz"}, ParseQuery("bad=%zz"))
}
