package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/fsys"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// WizardModel - Interactive option selection
// =============================================================================

type wizardStep int

const (
	stepDirectory wizardStep = iota
	stepHidden
	stepData
	stepFiles
	stepOrientation
	stepDepth
	stepDone
)

// questions holds the prompt of every yes/no step.
var questions = map[wizardStep]string{
	stepHidden: `Include hidden directories (starting with "." or "__")?`,
	stepData:   "Show number of files/directories and memory use for each directory?",
	stepFiles:  "Show files in each directory?",
}

// WizardModel is the bubbletea model that collects graph options step by
// step. Invalid orientation or depth input re-prompts instead of failing.
type WizardModel struct {
	Dirs      []string
	Cursor    int
	Opts      pipeline.Options
	Cancelled bool

	step   wizardStep
	input  string
	errMsg string
}

// NewWizardModel creates a wizard over dirs, starting from opts. If
// opts.Directory is one of dirs, it is preselected.
func NewWizardModel(dirs []string, opts pipeline.Options) WizardModel {
	m := WizardModel{Dirs: dirs, Opts: opts}
	if i := slices.Index(dirs, opts.Directory); i >= 0 {
		m.Cursor = i
	}
	return m
}

// Done reports whether every option has been collected.
func (m WizardModel) Done() bool { return m.step == stepDone }

func (m WizardModel) Init() tea.Cmd {
	return nil
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if s := key.String(); s == "ctrl+c" || s == "esc" {
		m.Cancelled = true
		return m, tea.Quit
	}

	switch m.step {
	case stepDirectory:
		switch key.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Dirs)-1 {
				m.Cursor++
			}
		case "enter":
			m.Opts.Directory = m.Dirs[m.Cursor]
			m.step++
		}

	case stepHidden, stepData, stepFiles:
		var answer bool
		switch strings.ToLower(key.String()) {
		case "y":
			answer = true
		case "n", "enter":
		default:
			return m, nil
		}
		switch m.step {
		case stepHidden:
			m.Opts.ShowHidden = answer
		case stepData:
			m.Opts.ShowData = answer
		case stepFiles:
			m.Opts.ShowFiles = answer
		}
		m.step++

	case stepOrientation, stepDepth:
		return m.updateInput(key)
	}
	return m, nil
}

// updateInput handles typing at the free-text steps.
func (m WizardModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyRunes:
		m.input += string(key.Runes)
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	value := strings.TrimSpace(m.input)
	m.input = ""
	if m.step == stepOrientation {
		if err := pipeline.ValidateOrientation(value); err != nil {
			m.errMsg = "Invalid orientation. Please enter again."
			return m, nil
		}
		m.Opts.Orientation = strings.ToUpper(value)
		m.errMsg = ""
		m.step++
		return m, nil
	}

	var depth *int
	if value != "" {
		d, err := strconv.Atoi(value)
		if err != nil || pipeline.ValidateDepth(d) != nil {
			m.errMsg = "Invalid depth. Enter a whole number, or leave empty for no limit."
			return m, nil
		}
		depth = &d
	}
	m.Opts.MaxDepth = depth
	m.errMsg = ""
	m.step = stepDone
	return m, tea.Quit
}

func (m WizardModel) View() string {
	if m.Cancelled || m.step == stepDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Directory Grapher"))
	b.WriteString("\n\n")

	switch m.step {
	case stepDirectory:
		b.WriteString("Select a directory to graph:\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc quit"))
		b.WriteString("\n\n")
		for i, d := range m.Dirs {
			if i == m.Cursor {
				b.WriteString(listSelectedStyle.Render("▸ " + d))
			} else {
				b.WriteString(listNormalStyle.Render("  " + d))
			}
			b.WriteString("\n")
		}

	case stepHidden, stepData, stepFiles:
		b.WriteString(questions[m.step])
		b.WriteString(listDimStyle.Render(" (y/n) "))

	case stepOrientation:
		b.WriteString("How should the graph be oriented?\n")
		b.WriteString(listDimStyle.Render("Top -> Bottom: TB\nBottom -> Top: BT\nLeft -> Right: LR\nRight -> Left: RL"))
		b.WriteString("\n\nOrientation: " + m.input)

	case stepDepth:
		b.WriteString("Maximum depth")
		b.WriteString(listDimStyle.Render(" (empty for no limit)"))
		b.WriteString(": " + m.input)
	}

	if m.errMsg != "" {
		b.WriteString("\n" + listErrorStyle.Render(m.errMsg))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Wizard Runner
// =============================================================================

// runWizard asks for the directory and options, then renders the graph.
func (c *CLI) runWizard(ctx context.Context, opts pipeline.Options) error {
	if !isTerminal(os.Stdin) {
		return errors.New(errors.ErrCodeInvalidInput, "interactive mode requires a terminal")
	}
	if err := opts.SetDefaults(); err != nil {
		return err
	}

	dirs, err := fsys.ListDirNames(os.DirFS(opts.BasePath), ".")
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return errors.New(errors.ErrCodeInvalidDirectory, "no directories in %s", opts.BasePath)
	}

	final, err := tea.NewProgram(NewWizardModel(dirs, opts), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("wizard: %w", err)
	}

	m := final.(WizardModel)
	if !m.Done() {
		printInfo("Cancelled")
		return nil
	}
	return c.runGraph(ctx, m.Opts)
}
