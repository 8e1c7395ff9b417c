package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldPrompt_DisabledInCI(t *testing.T) {
	for _, envVar := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Run(envVar, func(t *testing.T) {
			t.Setenv(envVar, "true")
			assert.False(t, ShouldPrompt())
		})
	}
}

func TestRequiredField(t *testing.T) {
	err := requiredField(fieldLoginName)("")
	require.Error(t, err)
	assert.Equal(t, "아이디은(는) 필수 입력 항목입니다.", err.Error())

	err = requiredField(fieldSecret)("")
	require.Error(t, err)
	assert.Equal(t, "비밀번호은(는) 필수 입력 항목입니다.", err.Error())

	assert.NoError(t, requiredField(fieldSecret)("admin123"))
}

func TestPromptForCredentials_SkipsWhenComplete(t *testing.T) {
	c := &Credentials{LoginName: "admin", Secret: "admin123"}
	require.NoError(t, PromptForCredentials(c))
	assert.Equal(t, Credentials{LoginName: "admin", Secret: "admin123"}, *c)
}

func TestLoginForm_Builds(t *testing.T) {
	assert.NotNil(t, LoginForm(&Credentials{}))
}
