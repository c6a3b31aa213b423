package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/service"
)

type importField int

const (
	fieldPhrase importField = iota
	fieldPassword
	fieldConfirm
	fieldBiometry
)

// importScreen restores a wallet from a recovery phrase.
type importScreen struct {
	ctx     context.Context
	v       visit
	restore *service.RestoreService

	phrase   string
	password string
	confirm  string
	focus    importField
	probe    service.BiometryProbe
	useBio   bool
	hints    []service.WordHint
	state    service.RestoreState
}

func newImportScreen(ctx context.Context, v visit, restore *service.RestoreService) (Screen, tea.Cmd) {
	s := importScreen{ctx: ctx, v: v, restore: restore}
	return s, func() tea.Msg {
		return biometryMsg{visit: v, probe: restore.ProbeBiometry()}
	}
}

func (s importScreen) Route() nav.Route { return nav.ImportFromSeed }
func (s importScreen) Visit() string    { return string(s.v) }
func (s importScreen) Title() string    { return "Import from seed" }

func (s importScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case biometryMsg:
		s.probe = msg.probe
		s.useBio = msg.probe.DefaultChoice()
		return s, nil, false
	case restoreDoneMsg:
		s.state = s.state.Finish(msg.outcome, msg.err)
		return s, nil, false
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil, false
}

func (s importScreen) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd, bool) {
	if s.state.Alert != "" {
		switch msg.String() {
		case "enter", "esc":
			s.state = s.state.DismissAlert()
		}
		return s, nil, false
	}
	if s.state.Phase != service.PhaseIdle {
		return s, nil, false
	}

	switch msg.String() {
	case "esc":
		return s, nil, true
	case "tab", "down":
		s.focus = s.nextField(1)
	case "shift+tab", "up":
		s.focus = s.nextField(-1)
	case "enter":
		if s.focus == fieldBiometry {
			s.useBio = !s.useBio
			return s, nil, false
		}
		return s.submit()
	case " ":
		if s.focus == fieldBiometry {
			s.useBio = !s.useBio
			return s, nil, false
		}
		s = s.edit(func(v string) string { return v + " " })
	case "backspace":
		s = s.edit(func(v string) string {
			r := []rune(v)
			if len(r) == 0 {
				return v
			}
			return string(r[:len(r)-1])
		})
	default:
		if msg.Type == tea.KeyRunes {
			s = s.edit(func(v string) string { return v + string(msg.Runes) })
		}
	}
	return s, nil, false
}

func (s importScreen) nextField(step int) importField {
	n := 3
	if s.probe.Supported {
		n = 4
	}
	return importField((int(s.focus) + step + n) % n)
}

func (s importScreen) edit(fn func(string) string) importScreen {
	switch s.focus {
	case fieldPhrase:
		s.phrase = strings.ToLower(fn(s.phrase))
		s.hints = service.PhraseHints(s.phrase)
	case fieldPassword:
		s.password = fn(s.password)
	case fieldConfirm:
		s.confirm = fn(s.confirm)
	}
	return s
}

func (s importScreen) submit() (Screen, tea.Cmd, bool) {
	next, ok := s.state.Begin()
	if !ok {
		return s, nil, false
	}
	s.state = next
	req := service.RestoreRequest{
		Phrase:             s.phrase,
		Password:           s.password,
		Confirmation:       s.confirm,
		UseBiometricUnlock: s.useBio,
		BiometryKind:       s.probe.Kind,
	}
	ctx, restore, v := s.ctx, s.restore, s.v
	return s, func() tea.Msg {
		outcome, err := restore.Submit(ctx, req)
		return restoreDoneMsg{visit: v, outcome: outcome, err: err}
	}, false
}

func (s importScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import from seed"))
	b.WriteString("\n\n")
	b.WriteString(s.field("Seed words", s.phrase, fieldPhrase))
	for _, h := range s.hints {
		line := fmt.Sprintf("word %d %q is not a seed word", h.Position, h.Word)
		if h.Suggestion != "" {
			line += fmt.Sprintf(", did you mean %q?", h.Suggestion)
		}
		b.WriteString(warningStyle.Render(line) + "\n")
	}
	b.WriteString(s.field("New password", mask(s.password), fieldPassword))
	b.WriteString(s.field("Confirm password", mask(s.confirm), fieldConfirm))

	if s.probe.Supported {
		marker := "[ ]"
		if s.useBio {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s Unlock with %s", marker, s.probe.Kind)
		if s.focus == fieldBiometry {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if s.state.Inline != "" {
		b.WriteString("\n" + errorStyle.Render(s.state.Inline) + "\n")
	}
	b.WriteString("\n")
	if s.state.Phase == service.PhaseSubmitting {
		b.WriteString(labelStyle.Render("Importing..."))
	} else {
		b.WriteString(help("tab", "next field", "enter", "import", "esc", "back"))
	}
	if s.state.Alert != "" {
		b.WriteString("\n\n")
		b.WriteString(modalStyle.Render(titleStyle.Render(s.state.AlertTitle) + "\n" + s.state.Alert + "\n" + help("enter", "OK")))
	}
	return b.String()
}

func (s importScreen) field(label, value string, f importField) string {
	style := fieldStyle
	prefix := "  "
	if s.focus == f {
		style = focusedFieldStyle
		prefix = cursorStyle.Render("> ")
	}
	return prefix + labelStyle.Render(label) + "\n  " + style.Render(value+" ") + "\n"
}

func mask(s string) string {
	return strings.Repeat("•", len([]rune(s)))
}
