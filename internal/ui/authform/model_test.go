package authform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSubmitTrimsUsername(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeLogin)
	m.fb.username = "  chef  "
	m.fb.password = " secret "

	msg, ok := m.handleSubmit()().(LoginSubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "chef", msg.Username)
	assert.Equal(t, " secret ", msg.Password, "passwords are sent as typed")
}

func TestRegisterSubmit(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeRegister)
	m.fb.name = "Julia"
	m.fb.username = "julia"
	m.fb.password = "butter!"
	m.fb.image = ""

	msg, ok := m.handleSubmit()().(RegisterSubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "julia", msg.Request.Username)
	assert.Equal(t, "Julia", msg.Request.Name)
	assert.Equal(t, "butter!", msg.Request.Password)
}

func TestOAuthSubmit(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeOAuth)
	m.fb.idToken = "eyJ.abc.def\n"

	msg, ok := m.handleSubmit()().(OAuthSubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "eyJ.abc.def", msg.IDToken)
}

func TestStartResetsBindings(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeLogin)
	m.fb.username = "left over"

	m.Start(ModeRegister)
	assert.Empty(t, m.fb.username)
	assert.Equal(t, ModeRegister, m.Mode())
}

func TestSetErrorShownInView(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeLogin)
	m.SetError(errors.New("wrong password"))

	assert.Contains(t, m.View(), "wrong password")

	m.SetError(nil)
	assert.NotContains(t, m.View(), "wrong password")
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired("Name")("  "))
	assert.NoError(t, validateRequired("Name")("x"))
	assert.Error(t, validateUsername("ab"))
	assert.NoError(t, validateUsername("abc"))
	assert.Error(t, validatePassword("12345"))
	assert.NoError(t, validatePassword("123456"))

	m := New(80, 24)
	m.fb.password = "abcdef"
	assert.Error(t, m.validateConfirm("abcdeg"))
	assert.NoError(t, m.validateConfirm("abcdef"))
}
