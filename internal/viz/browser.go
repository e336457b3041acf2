package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/phasekit/internal/phase"
	"github.com/san-kum/phasekit/internal/storage"
)

// Browser steps through the snapshots of one checkpoint.
type Browser struct {
	phase  *phase.Phase
	meta   *storage.Metadata
	states [][]float64
	temps  []float64
	index  int
	basis  Basis
	width  int
	err    error
}

func NewBrowser(p *phase.Phase, meta *storage.Metadata, states [][]float64) *Browser {
	temps := make([]float64, 0, len(states))
	for _, s := range states {
		if len(s) > 0 {
			temps = append(temps, s[0])
		}
	}
	b := &Browser{phase: p, meta: meta, states: states, temps: temps, width: 80}
	b.load()
	return b
}

func (b *Browser) Index() int   { return b.index }
func (b *Browser) Basis() Basis { return b.basis }
func (b *Browser) Err() error   { return b.err }

func (b *Browser) load() {
	if len(b.states) == 0 {
		return
	}
	b.err = b.phase.RestoreState(b.states[b.index])
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
	case tea.KeyMsg:
		last := len(b.states) - 1
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "left", "h":
			if b.index > 0 {
				b.index--
			}
		case "right", "l":
			if b.index < last {
				b.index++
			}
		case "g", "home":
			b.index = 0
		case "G", "end":
			b.index = max(last, 0)
		case "b":
			b.basis = 1 - b.basis
		default:
			return b, nil
		}
		b.load()
	}
	return b, nil
}

func (b *Browser) View() string {
	var s strings.Builder

	s.WriteString(Title.Render(fmt.Sprintf("%s  %s", b.meta.Mixture, b.meta.ID)))
	s.WriteByte('\n')
	if len(b.states) == 0 {
		s.WriteString(Subtle.Render("checkpoint has no snapshots"))
		return s.String()
	}

	fmt.Fprintf(&s, "%s %d/%d  %s\n",
		MetricLabel.Render("snapshot"), b.index+1, len(b.states),
		Subtle.Render(Sparkline(b.temps, min(len(b.temps), 40))))

	barWidth := max(b.width-nameWidth-20, 10)
	if b.err != nil {
		s.WriteString(ErrorText.Render(b.err.Error()))
	} else {
		s.WriteString(Panel.Render(RenderState(b.phase, b.basis, barWidth)))
	}
	s.WriteByte('\n')
	s.WriteString(KeyHint.Render("←/→ step  g/G first/last  b basis  q quit"))
	return s.String()
}

// RunBrowser blocks until the user quits.
func RunBrowser(p *phase.Phase, meta *storage.Metadata, states [][]float64) error {
	_, err := tea.NewProgram(NewBrowser(p, meta, states)).Run()
	return err
}
