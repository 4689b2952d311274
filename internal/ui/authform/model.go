// Package authform holds the sign-in and sign-up forms.
package authform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/theme"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeOAuth
)

// LoginSubmitMsg is dispatched when the login form completes.
type LoginSubmitMsg struct {
	Username string
	Password string
}

// OAuthSubmitMsg is dispatched when an OAuth ID token was entered.
type OAuthSubmitMsg struct {
	IDToken string
}

// RegisterSubmitMsg is dispatched when the registration form completes.
type RegisterSubmitMsg struct {
	Request api.RegisterRequest
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	password string
	confirm  string
	name     string
	image    string
	idToken  string
}

// Model is the Bubble Tea model for the authentication forms.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   Mode
	err    string
	width  int
	height int
}

// New creates a new auth form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start resets the bindings and builds the form for mode.
func (m *Model) Start(mode Mode) tea.Cmd {
	m.mode = mode
	m.err = ""
	*m.fb = formBindings{}

	switch mode {
	case ModeRegister:
		m.form = m.buildRegisterForm()
	case ModeOAuth:
		m.form = m.buildOAuthForm()
	default:
		m.form = m.buildLoginForm()
	}
	return m.form.Init()
}

// Mode returns the form currently shown.
func (m Model) Mode() Mode {
	return m.mode
}

// SetError shows a failure from the last submission. The form is rebuilt so
// the user can try again with the values already typed.
func (m *Model) SetError(err error) tea.Cmd {
	if err == nil {
		m.err = ""
		return nil
	}
	m.err = err.Error()

	switch m.mode {
	case ModeRegister:
		m.form = m.buildRegisterForm()
	case ModeOAuth:
		m.form = m.buildOAuthForm()
	default:
		m.form = m.buildLoginForm()
	}
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Sign in"
	switch m.mode {
	case ModeRegister:
		titleText = "Create an account"
	case ModeOAuth:
		titleText = "Sign in with Google"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.err != "" {
		content += theme.ErrorStyle.Render(m.err) + "\n\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.fb.username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildOAuthForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google ID token").
				Description("Paste the ID token issued by Google sign-in").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.idToken).
				Validate(validateRequired("ID token")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Username").
				Placeholder("3 to 32 characters").
				Value(&m.fb.username).
				Validate(validateUsername),
			huh.NewInput().
				Title("Password").
				Placeholder("at least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(m.validateConfirm),
			huh.NewInput().
				Title("Profile image").
				Placeholder("URL (optional)").
				Value(&m.fb.image),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	switch m.mode {
	case ModeRegister:
		req := api.RegisterRequest{
			Username: strings.TrimSpace(fb.username),
			Password: fb.password,
			Name:     strings.TrimSpace(fb.name),
			Image:    strings.TrimSpace(fb.image),
		}
		return func() tea.Msg { return RegisterSubmitMsg{Request: req} }
	case ModeOAuth:
		token := strings.TrimSpace(fb.idToken)
		return func() tea.Msg { return OAuthSubmitMsg{IDToken: token} }
	default:
		username := strings.TrimSpace(fb.username)
		return func() tea.Msg { return LoginSubmitMsg{Username: username, Password: fb.password} }
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateUsername(s string) error {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 32 {
		return fmt.Errorf("username must be 3 to 32 characters")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

func (m *Model) validateConfirm(s string) error {
	if s != m.fb.password {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
