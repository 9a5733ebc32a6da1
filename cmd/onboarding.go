package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripsee/internal/account"
	"tripsee/internal/domain"
	"tripsee/internal/model"
)

type OnboardingSettings struct {
	Completed bool   `json:"completed"`
	Skipped   bool   `json:"skipped,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	path := onboardingPath(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

const (
	regFieldName = iota
	regFieldEmail
	regFieldPassword
	regFieldConfirm
	regFieldCount
)

var regFieldKeys = [regFieldCount]string{"name", "email", "password", "confirmPassword"}

type registeredMsg struct {
	user model.User
	err  error
}

type onboardingModel struct {
	service *account.Service
	inputs  []textinput.Model
	focused int

	submitting bool
	cancel     context.CancelFunc
	spinner    spinner.Model

	fieldErr string
	errField int
	alert    string
	user     *model.User
	width    int
	height   int
}

var (
	obColorMuted  = lipgloss.Color("#7D8A96")
	obColorText   = lipgloss.Color("#D8E1E8")
	obColorAccent = lipgloss.Color("#7FB2C9")
	obColorDanger = lipgloss.Color("#f38ba8")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obAlertStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(obColorDanger).
			Padding(1, 2)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obWarnStyle = lipgloss.NewStyle().
			Foreground(obColorDanger)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingModel(service *account.Service) onboardingModel {
	placeholders := [regFieldCount]string{"Ada Lovelace", "ada@example.com", "at least 8 chars, A-Z and 0-9", "repeat password"}
	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 100
		in.Prompt = ""
		in.TextStyle = lipgloss.NewStyle().Foreground(obColorText)
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(obColorMuted)
		if i == regFieldPassword || i == regFieldConfirm {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	inputs[regFieldName].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(obColorAccent)

	return onboardingModel{
		service:  service,
		inputs:   inputs,
		spinner:  s,
		errField: -1,
	}
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) registration() account.Registration {
	return account.Registration{
		Name:            m.inputs[regFieldName].Value(),
		Email:           m.inputs[regFieldEmail].Value(),
		Password:        m.inputs[regFieldPassword].Value(),
		ConfirmPassword: m.inputs[regFieldConfirm].Value(),
	}
}

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case registeredMsg:
		m.submitting = false
		m.cancel = nil
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.user = &msg.user
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.alert != "" {
			if msg.String() == "enter" || msg.String() == "esc" {
				m.alert = ""
			}
			return m, nil
		}
		if msg.String() == "esc" {
			return m.quit()
		}
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			return m.focus(m.focused + 1), nil
		case "shift+tab", "up":
			return m.focus(m.focused - 1), nil
		case "enter":
			if m.focused < regFieldConfirm {
				return m.focus(m.focused + 1), nil
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		}

		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

// quit abandons registration, cancelling a submit still in flight.
func (m onboardingModel) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.submitting = false
	return m, tea.Quit
}

func (m onboardingModel) focus(i int) onboardingModel {
	m.inputs[m.focused].Blur()
	m.focused = (i + regFieldCount) % regFieldCount
	m.inputs[m.focused].Focus()
	return m
}

// submit validates locally first so field problems never wait on the
// simulated backend.
func (m onboardingModel) submit() (tea.Model, tea.Cmd) {
	reg := m.registration()
	if err := reg.Validate(); err != nil {
		return m.showError(err), nil
	}

	m.fieldErr = ""
	m.errField = -1
	m.submitting = true
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	service := m.service
	register := func() tea.Msg {
		user, err := service.Register(ctx, reg)
		return registeredMsg{user: user, err: err}
	}
	return m, tea.Batch(register, m.spinner.Tick)
}

func (m onboardingModel) showError(err error) onboardingModel {
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		m.alert = err.Error()
		return m
	}
	m.fieldErr = ve.Error()
	m.errField = -1
	for i, key := range regFieldKeys {
		if key == ve.Field {
			m.errField = i
			m.fieldErr = ve.Msg
			m = m.focus(i)
			break
		}
	}
	return m
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)

	contentHeight := height - 4
	if contentHeight < 8 {
		contentHeight = 8
	}
	content := m.renderContent(width, contentHeight)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(ui)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + obTitleStyle.Render("tripsee") + " " + obMutedStyle.Render("› Create account")
	right := obMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderFooter(width int) string {
	switch {
	case m.alert != "":
		return obFooterStyle.Width(width).Render("enter dismiss")
	case m.submitting:
		return obFooterStyle.Width(width).Render("esc cancel")
	default:
		return obFooterStyle.Width(width).Render("tab/↑↓ move  enter next/submit  ctrl+s submit  esc skip")
	}
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(72, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	if m.alert != "" {
		box := obAlertStyle.Width(cardWidth).Render(lipgloss.JoinVertical(
			lipgloss.Left,
			obWarnStyle.Bold(true).Render("Registration failed"),
			"",
			m.alert,
			"",
			obMutedStyle.Render("Press enter to try again."),
		))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	labels := [regFieldCount]string{"Name", "Email", "Password", "Confirm password"}
	rows := []string{obLabelStyle.Render("Create your TripSee account"), ""}
	for i, in := range m.inputs {
		label := obMutedStyle.Render(labels[i])
		if i == m.focused {
			label = obLabelStyle.Render(labels[i])
		}
		rows = append(rows, label, "  "+in.View())
		if i == m.errField && m.fieldErr != "" {
			rows = append(rows, "  "+obWarnStyle.Render(m.fieldErr))
		}
		rows = append(rows, "")
	}
	if m.fieldErr != "" && m.errField < 0 {
		rows = append(rows, obWarnStyle.Render(m.fieldErr), "")
	}
	if m.submitting {
		rows = append(rows, m.spinner.View()+" Creating account...")
	} else {
		rows = append(rows, obMutedStyle.Render("Accounts stay on this machine. Press esc to skip."))
	}

	card := obPanelStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

// runOnboarding shows the registration form and records the outcome so it
// is not offered again.
func runOnboarding(configDir string, service *account.Service) (OnboardingSettings, error) {
	prog := tea.NewProgram(newOnboardingModel(service), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	settings := m.settings()
	if err := saveOnboardingSettings(configDir, settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func (m onboardingModel) settings() OnboardingSettings {
	if m.user != nil {
		return OnboardingSettings{Completed: true, UserEmail: m.user.Email}
	}
	return OnboardingSettings{Completed: true, Skipped: true}
}
