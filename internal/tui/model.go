// Package tui is the interactive dashboard for the BockQSC1090 simulator:
// an .algo editor on the left, experiment results on the right, and a small
// experiment menu to launch calibration, tomography and benchmarking runs.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/BOCK-AI/BockQSC1090/algo"
	"github.com/BOCK-AI/BockQSC1090/calib"
	"github.com/BOCK-AI/BockQSC1090/device"
	"github.com/BOCK-AI/BockQSC1090/exp"
	"github.com/BOCK-AI/BockQSC1090/pulse"
	"github.com/BOCK-AI/BockQSC1090/quantum"
	"github.com/BOCK-AI/BockQSC1090/rb"
	"github.com/BOCK-AI/BockQSC1090/tomo"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusEditor focus = iota
	focusMenu
)

// experiment is one entry of the launch menu.
type experiment struct {
	name string
	run  func(m *Model) tea.Cmd
}

// resultMsg carries a finished experiment's rendered report back into Update.
type resultMsg struct {
	title string
	body  string
	err   error
}

// Model is the dashboard state.
type Model struct {
	editor    textarea.Model
	focus     focus
	menuIdx   int
	width     int
	height    int
	seed      int64
	logger    *zap.Logger
	statusMsg string

	// Last program run.
	bitstring string
	probs     []quantum.QubitProbability
	schedule  *pulse.Schedule

	// Last experiment report.
	reportTitle string
	reportBody  string
}

const defaultProgram = `# Bell pair on qubits 0 and 1
H 0
CNOT 0 1
MEASURE
`

// New builds the dashboard model. The seed feeds every run launched from the
// UI so sessions are reproducible.
func New(seed int64, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ta := textarea.New()
	ta.Placeholder = "Write .algo instructions here..."
	ta.SetValue(defaultProgram)
	ta.SetWidth(40)
	ta.SetHeight(12)
	ta.ShowLineNumbers = true
	ta.Focus()

	return Model{
		editor: ta,
		focus:  focusEditor,
		seed:   seed,
		logger: logger,
	}
}

// experiments is the launch menu. Each entry runs in a tea.Cmd so the UI
// stays responsive while shots accumulate.
var experiments = []experiment{
	{name: "Rabi calibration (Q0)", run: func(m *Model) tea.Cmd {
		seed, logger := m.seed, m.logger
		return func() tea.Msg {
			rec, err := calib.Run(context.Background(), 0, calib.Rabi, calib.Config{}, seed, logger)
			if err != nil {
				return resultMsg{title: "Rabi", err: err}
			}
			return resultMsg{title: "Rabi calibration", body: fmt.Sprintf(
				"qubit 0\nfitted Omega: %.3f rad/us\nresidual: %.4f\nconverged: %v",
				rec.RabiFreq, rec.Residual, rec.Converged)}
		}
	}},
	{name: "Ramsey calibration (Q0)", run: func(m *Model) tea.Cmd {
		seed, logger := m.seed, m.logger
		return func() tea.Msg {
			rec, err := calib.Run(context.Background(), 0, calib.Ramsey, calib.Config{}, seed, logger)
			if err != nil {
				return resultMsg{title: "Ramsey", err: err}
			}
			return resultMsg{title: "Ramsey calibration", body: fmt.Sprintf(
				"qubit 0\nfitted T2*: %.3f us\nfitted detuning: %.3f MHz\nresidual: %.4f\nconverged: %v",
				rec.T2Star, rec.Detuning, rec.Residual, rec.Converged)}
		}
	}},
	{name: "State tomography (Q0)", run: func(m *Model) tea.Cmd {
		seed, logger := m.seed, m.logger
		prog, err := algo.Parse(m.editor.Value())
		return func() tea.Msg {
			if err != nil {
				return resultMsg{title: "Tomography", err: err}
			}
			rec, terr := tomo.Run(context.Background(), 0, 2000, tomo.Config{Prep: prog.Ops}, seed, logger)
			if terr != nil {
				return resultMsg{title: "Tomography", err: terr}
			}
			return resultMsg{title: "State tomography", body: fmt.Sprintf(
				"qubit 0 after program prep\nBloch: (%.3f, %.3f, %.3f)\nclamped: %v",
				rec.Bloch[0], rec.Bloch[1], rec.Bloch[2], rec.Clamped)}
		}
	}},
	{name: "Randomized benchmarking (Q0)", run: func(m *Model) tea.Cmd {
		seed, logger := m.seed, m.logger
		return func() tea.Msg {
			rec, err := rb.Run(context.Background(), 0, rb.Config{NoiseProb: 0.01}, seed, logger)
			if err != nil {
				return resultMsg{title: "RB", err: err}
			}
			return resultMsg{title: "Randomized benchmarking", body: fmt.Sprintf(
				"qubit 0, depolarizing p=0.01\ndecay p: %.5f\navg gate fidelity: %.5f",
				rec.DecayP, rec.GateFidelity)}
		}
	}},
	{name: "Device benchmarks", run: func(m *Model) tea.Cmd {
		seed := m.seed
		return func() tea.Msg {
			b := device.RunBenchmarks(seed)
			return resultMsg{title: "Device benchmarks", body: b.Summary()}
		}
	}},
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/2-6, 24))
		m.editor.SetHeight(max(msg.Height-14, 6))

	case resultMsg:
		if msg.err != nil {
			m.reportTitle = msg.title
			m.reportBody = errorStyle.Render(msg.err.Error())
		} else {
			m.reportTitle = msg.title
			m.reportBody = msg.body
		}

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusEditor:
			switch key {
			case "tab":
				m.focus = focusMenu
				m.editor.Blur()
			case "ctrl+r":
				m.runProgram()
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusMenu:
			switch key {
			case "q", "esc":
				return m, tea.Quit
			case "tab":
				m.focus = focusEditor
				m.editor.Focus()
				cmds = append(cmds, textarea.Blink)
			case "up", "k":
				if m.menuIdx > 0 {
					m.menuIdx--
				}
			case "down", "j":
				if m.menuIdx < len(experiments)-1 {
					m.menuIdx++
				}
			case "enter":
				m.statusMsg = "running " + experiments[m.menuIdx].name + "..."
				cmds = append(cmds, experiments[m.menuIdx].run(&m))
			case "r":
				m.runProgram()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// runProgram parses and executes the editor's program, refreshing the result
// panels. Each press reseeds the measurement from the wall clock so repeated
// runs show the distribution, not one frozen outcome.
func (m *Model) runProgram() {
	text := m.editor.Value()
	prog, err := algo.Parse(text)
	if err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return
	}

	reg := quantum.NewRegister(quantum.DefaultNumQubits)
	if err := reg.ApplyAll(prog.Ops); err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return
	}
	m.probs = reg.State().QubitProbabilities()

	bits, err := reg.Measure(exp.NewRand(time.Now().UnixNano()))
	if err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return
	}
	m.bitstring = bits

	m.schedule, err = pulse.Compile(prog.Ops, quantum.DefaultNumQubits)
	if err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return
	}
	m.statusMsg = fmt.Sprintf("ran %d gates", len(prog.Ops))
}
