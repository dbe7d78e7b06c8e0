// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package editor implements the interactive terminal editor.
//
// The editor shows the circuit's blocks and wires with their current
// signals, the recorded waveforms and the output of the last commands. Every
// edit goes through the command language of package command.
//
package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/blocksim"
	"github.com/db47h/blocksim/internal/command"
)

// maximum number of output lines kept.
const maxLog = 200

type logLine struct {
	text string
	err  bool
}

// Model is the editor's bubbletea model.
//
type Model struct {
	s        *command.Session
	input    textinput.Model
	log      []logLine
	help     string
	showHelp bool
	width    int
	height   int
	styles   styles
}

// New returns an editor for session s.
//
func New(s *command.Session) Model {
	in := textinput.New()
	in.Placeholder = "command (help for a list, space to tick)"
	in.Prompt = "> "
	in.CharLimit = 256
	in.Width = 60
	in.Focus()
	m := Model{
		s:      s,
		input:  in,
		width:  80,
		height: 24,
		styles: defaultStyles(),
	}
	m.input.PromptStyle = m.styles.Prompt
	m.help = renderHelp(m.width)
	return m
}

// Run runs the editor in the terminal until the user quits.
//
func Run(s *command.Session) error {
	_, err := tea.NewProgram(New(s), tea.WithAltScreen()).Run()
	return err
}

// renderHelp renders the command help markdown for the given width. The raw
// markdown is returned if rendering fails.
//
func renderHelp(width int) string {
	md := command.Help()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Init implements tea.Model.
//
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
//
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		m.help = renderHelp(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			return m, tea.Quit
		case "f1":
			m.showHelp = !m.showHelp
			return m, nil
		case " ":
			if m.input.Value() == "" {
				return m.exec("tick")
			}
		case "enter":
			line := m.input.Value()
			m.input.Reset()
			return m.exec(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exec runs a command line and appends its output to the log.
//
func (m Model) exec(line string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	if f := strings.Fields(line); f[0] == "help" && len(f) == 1 {
		m.showHelp = true
		return m, nil
	}
	m.showHelp = false
	out, err := m.s.Exec(line)
	if err == command.ErrQuit {
		return m, tea.Quit
	}
	m.appendLog(logLine{text: "> " + line})
	if err != nil {
		m.appendLog(logLine{text: err.Error(), err: true})
		return m, nil
	}
	for _, l := range strings.Split(out, "\n") {
		if l != "" {
			m.appendLog(logLine{text: l})
		}
	}
	return m, nil
}

func (m *Model) appendLog(l logLine) {
	m.log = append(m.log, l)
	if len(m.log) > maxLog {
		m.log = append(m.log[:0], m.log[len(m.log)-maxLog:]...)
	}
}

// Log returns the lines of the output log.
//
func (m Model) Log() []string {
	ls := make([]string, len(m.log))
	for i, l := range m.log {
		ls[i] = l.text
	}
	return ls
}

// View implements tea.Model.
//
func (m Model) View() string {
	c := m.s.Circuit()
	header := m.styles.Header.Render("blocksim  tick " + strconv.FormatUint(c.Ticks(), 10))
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.help, m.styles.Muted.Render("esc to close"))
	}

	panels := []string{m.panel("Blocks", m.blocks())}
	if len(m.s.Recorder().Probes()) > 0 {
		panels = append(panels, m.panel("Waves", strings.TrimSuffix(m.s.Recorder().String(), "\n")))
	}
	panels = append(panels, m.panel("Output", m.tail()))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinVertical(lipgloss.Left, panels...),
		m.input.View(),
		m.styles.Muted.Render("enter: run  space: tick  f1: help  esc: quit"),
	)
}

func (m Model) panel(title, body string) string {
	if body == "" {
		body = m.styles.Muted.Render("(empty)")
	}
	return m.styles.Panel.Width(m.width - 2).Render(m.styles.Title.Render(title) + "\n" + body)
}

func (m Model) bit(name string, v bool) string {
	if v {
		return name + "=" + m.styles.High.Render("1")
	}
	return name + "=" + m.styles.Low.Render("0")
}

// blocks renders every block and wire with its signals.
//
func (m Model) blocks() string {
	c := m.s.Circuit()
	var lines []string
	for _, id := range c.Blocks() {
		bi, err := c.Block(id)
		if err != nil {
			continue
		}
		parts := []string{
			strconv.FormatUint(uint64(id), 10),
			bi.Kind.String(),
			m.styles.Muted.Render("(" + strconv.Itoa(bi.Pos.X) + "," + strconv.Itoa(bi.Pos.Y) + ")"),
		}
		if bi.Kind == blocksim.Input {
			parts = append(parts, "stream="+bi.Stream, "idx="+strconv.Itoa(bi.Cursor))
		}
		for _, p := range bi.Ports {
			parts = append(parts, m.bit(p.Name, p.Signal))
		}
		switch bi.Kind {
		case blocksim.Output:
			parts = append(parts, "history="+bi.History)
		case blocksim.Memory:
			parts = append(parts, m.bit("Stored", bi.Stored))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	for _, w := range c.Wires() {
		lines = append(lines, m.styles.Muted.Render("wire "+strconv.FormatUint(uint64(w.ID), 10)+":")+" "+
			w.From.String()+" -> "+w.To.String()+" "+m.bit("", w.Signal))
	}
	return strings.Join(lines, "\n")
}

// tail renders the last lines of the output log that fit the window.
//
func (m Model) tail() string {
	n := m.height / 3
	if n < 3 {
		n = 3
	}
	ls := m.log
	if len(ls) > n {
		ls = ls[len(ls)-n:]
	}
	out := make([]string, len(ls))
	for i, l := range ls {
		if l.err {
			out[i] = m.styles.Error.Render(l.text)
		} else {
			out[i] = l.text
		}
	}
	return strings.Join(out, "\n")
}
