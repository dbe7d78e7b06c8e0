// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package command implements the blocksim editor command language.
//
// A command is a single line of whitespace separated words, the first word
// being the command name:
//
//	add and 100 40
//	connect 1.out 2.a
//	tick 4
//
// Block IDs, wire IDs and port references ("3.out") are the ones reported by
// the circuit.
//
package command

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/blocksim"
	"github.com/db47h/blocksim/blocklib"
	"github.com/db47h/blocksim/internal/config"
	"github.com/db47h/blocksim/trace"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

// ErrQuit is returned by Exec for the quit command.
//
var ErrQuit = errors.New("quit")

// A Session executes commands against a circuit.
//
type Session struct {
	c   *blocksim.Circuit
	cfg *config.Config
	rec *trace.Recorder
	log *zap.Logger
}

// New returns a new session editing a new circuit configured from cfg.
//
func New(cfg *config.Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		c:   blocksim.New(blocksim.WithLogger(log), blocksim.WithSettleLimit(cfg.Engine.SettleLimit)),
		cfg: cfg,
		rec: trace.NewRecorder(),
	}
	s.log = log.With(zap.Stringer("circuit", s.c.ID()))
	s.rec.Attach(s.c)
	return s
}

// Circuit returns the edited circuit.
//
func (s *Session) Circuit() *blocksim.Circuit { return s.c }

// Recorder returns the waveform recorder attached to the circuit.
//
func (s *Session) Recorder() *trace.Recorder { return s.rec }

type command struct {
	name string
	args string
	help string
	min  int // minimum number of arguments
	max  int // maximum number of arguments, -1 for no limit
	run  func(s *Session, args []string) (string, error)
}

var commands []*command

func init() {
	commands = []*command{
		{"add", "KIND [X Y]", "add a block of the given kind (input, output, and, or, xor, not, m)", 1, 3, (*Session).add},
		{"place", "PREFAB [X Y]", "add a prefabricated assembly (see `prefabs`)", 1, 3, (*Session).place},
		{"prefabs", "", "list prefabricated assemblies", 0, 0, (*Session).prefabs},
		{"rm", "BLOCK", "remove a block and all its wires", 1, 1, (*Session).rm},
		{"move", "BLOCK X Y", "move a block", 3, 3, (*Session).move},
		{"connect", "FROM TO", "wire output port FROM to input port TO, e.g. `connect 1.out 2.a`", 2, 2, (*Session).connect},
		{"disconnect", "WIRE", "remove a wire", 1, 1, (*Session).disconnect},
		{"stream", "BLOCK BITS", "set the bit stream of an Input block; characters other than 0 and 1 are ignored", 1, -1, (*Session).stream},
		{"type", "BLOCK BITS", "append bits to the stream of an Input block", 2, -1, (*Session).typ},
		{"backspace", "BLOCK", "remove the last bit of the stream of an Input block", 1, 1, (*Session).backspace},
		{"clear", "BLOCK", "clear the history of an Output block", 1, 1, (*Session).clear},
		{"tick", "[N]", "run N clock ticks (default 1)", 0, 1, (*Session).tick},
		{"show", "[BLOCK]", "show a block, or all blocks and wires", 0, 1, (*Session).show},
		{"probe", "NAME PORT", "record the signal of PORT under NAME", 2, 2, (*Session).probe},
		{"wave", "", "show recorded waveforms", 0, 0, (*Session).wave},
		{"plot", "FILE", "save recorded waveforms as an image (png, svg, pdf)", 1, 1, (*Session).plot},
		{"reset", "", "rewind inputs, clear outputs and memory", 0, 0, (*Session).reset},
		{"help", "[COMMAND]", "show help", 0, 1, (*Session).help},
		{"quit", "", "leave the editor", 0, 0, func(*Session, []string) (string, error) { return "", ErrQuit }},
	}
}

func lookup(name string) *command {
	for _, c := range commands {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Exec executes a single command line and returns its output. Empty lines
// and lines starting with '#' are ignored.
//
func (s *Session) Exec(line string) (string, error) {
	f := strings.Fields(line)
	if len(f) == 0 || strings.HasPrefix(f[0], "#") {
		return "", nil
	}
	cmd := lookup(strings.ToLower(f[0]))
	if cmd == nil {
		return "", errors.Errorf("unknown command %q", f[0])
	}
	args := f[1:]
	if len(args) < cmd.min || cmd.max >= 0 && len(args) > cmd.max {
		return "", errors.Errorf("usage: %s %s", cmd.name, cmd.args)
	}
	out, err := cmd.run(s, args)
	if err != nil && err != ErrQuit {
		s.log.Debug("command failed", zap.String("cmd", line), zap.Error(err))
	}
	return out, err
}

// Run executes commands read from r, one per line, and writes their output to
// w. It stops at the first error or at a quit command.
//
func (s *Session) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		out, err := s.Exec(sc.Text())
		if err == ErrQuit {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		if out != "" {
			if _, err := io.WriteString(w, out+"\n"); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

// at returns the snapped placement position given as optional X Y args, or
// the spawn position.
//
func (s *Session) at(args []string) (blocksim.Point, error) {
	p := s.cfg.Editor.Spawn
	switch len(args) {
	case 0:
	case 2:
		var err error
		if p.X, err = strconv.Atoi(args[0]); err != nil {
			return p, errors.Errorf("invalid X %q", args[0])
		}
		if p.Y, err = strconv.Atoi(args[1]); err != nil {
			return p, errors.Errorf("invalid Y %q", args[1])
		}
	default:
		return p, errors.New("expected both X and Y")
	}
	return s.cfg.Editor.Snap(p), nil
}

func (s *Session) add(args []string) (string, error) {
	k, err := blocksim.ParseKind(args[0])
	if err != nil {
		return "", err
	}
	at, err := s.at(args[1:])
	if err != nil {
		return "", err
	}
	id := s.c.AddBlock(k, at)
	return "added " + blockName(id, k) + " at " + pointString(at), nil
}

func (s *Session) place(args []string) (string, error) {
	build, ok := blocklib.Lookup(strings.ToLower(args[0]))
	if !ok {
		return "", errors.Errorf("unknown prefab %q", args[0])
	}
	at, err := s.at(args[1:])
	if err != nil {
		return "", err
	}
	asm, err := build(s.c, at)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("placed " + asm.Name + ": blocks")
	for _, id := range asm.Blocks {
		b.WriteString(" " + strconv.FormatUint(uint64(id), 10))
	}
	for _, n := range asm.InputNames() {
		b.WriteString("\n  in  " + n + ":")
		for _, p := range asm.Inputs[n] {
			b.WriteString(" " + p.String())
		}
	}
	for _, n := range asm.OutputNames() {
		b.WriteString("\n  out " + n + ": " + asm.Outputs[n].String())
	}
	return b.String(), nil
}

func (s *Session) prefabs([]string) (string, error) {
	return strings.Join(blocklib.Names(), "\n"), nil
}

func (s *Session) rm(args []string) (string, error) {
	id, err := blocksim.ParseBlockID(args[0])
	if err != nil {
		return "", err
	}
	if !s.c.RemoveBlock(id) {
		return "", errors.Wrapf(blocksim.ErrNoSuchBlock, "block %d", id)
	}
	return "removed block " + args[0], nil
}

func (s *Session) move(args []string) (string, error) {
	id, err := blocksim.ParseBlockID(args[0])
	if err != nil {
		return "", err
	}
	at, err := s.at(args[1:])
	if err != nil {
		return "", err
	}
	if err = s.c.MoveBlock(id, at); err != nil {
		return "", err
	}
	return "moved block " + args[0] + " to " + pointString(at), nil
}

func (s *Session) connect(args []string) (string, error) {
	from, err := blocksim.ParsePortRef(args[0])
	if err != nil {
		return "", err
	}
	to, err := blocksim.ParsePortRef(args[1])
	if err != nil {
		return "", err
	}
	id, err := s.c.Connect(from, to)
	if err != nil {
		return "", err
	}
	return "wire " + strconv.FormatUint(uint64(id), 10) + ": " + from.String() + " -> " + to.String(), nil
}

func (s *Session) disconnect(args []string) (string, error) {
	id, err := blocksim.ParseWireID(args[0])
	if err != nil {
		return "", err
	}
	if !s.c.Disconnect(id) {
		return "", errors.Wrapf(blocksim.ErrNoSuchWire, "wire %d", id)
	}
	return "removed wire " + args[0], nil
}

func (s *Session) stream(args []string) (string, error) {
	id, err := blocksim.ParseBlockID(args[0])
	if err != nil {
		return "", err
	}
	if err = s.c.SetInputStream(id, strings.Join(args[1:], "")); err != nil {
		return "", err
	}
	return s.showBlock(id)
}

func (s *Session) typ(args []string) (string, error) {
	id, err := blocksim.ParseBlockID(args[0])
	if err != nil {
		return "", err
	}
	if err = s.c.AppendInputStream(id, strings.Join(args[1:], "")); err != nil {
		return "", err
	}
	return s.showBlock(id)
}

func (s *Session) backspace(args []string) (string, error) {
	id, err := blocksim.ParseBlockID(args[0])
	if err != nil {
		return "", err
	}
	if err = s.c.TrimInputStream(id); err != nil {
		return "", err
	}
	return s.showBlock(id)
}

func (s *Session) clear(args []string) (string, error) {
	id, err := blocksim.ParseBlockID(args[0])
	if err != nil {
		return "", err
	}
	if err = s.c.ClearHistory(id); err != nil {
		return "", err
	}
	return s.showBlock(id)
}

// Limits of the tick command: at most MaxTicks ticks per command, with one
// report line per tick up to maxReports ticks and a summary beyond.
const (
	MaxTicks   = 10000
	maxReports = 16
)

func (s *Session) tick(args []string) (string, error) {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 || n > MaxTicks {
			return "", errors.Errorf("invalid tick count %q (1 to %d)", args[0], MaxTicks)
		}
	}
	var (
		b        strings.Builder
		r        blocksim.TickReport
		unstable int
	)
	for i := 0; i < n; i++ {
		r = s.c.Tick()
		if !r.Settle.Stable {
			unstable++
		}
		if n > maxReports {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(reportString(r))
	}
	if n > maxReports {
		b.WriteString("ran " + strconv.Itoa(n) + " ticks, " + strconv.Itoa(unstable) + " did not settle\n")
		b.WriteString(reportString(r))
	}
	return b.String(), nil
}

func (s *Session) show(args []string) (string, error) {
	if len(args) == 1 {
		id, err := blocksim.ParseBlockID(args[0])
		if err != nil {
			return "", err
		}
		return s.showBlock(id)
	}
	var lines []string
	for _, id := range s.c.Blocks() {
		l, err := s.showBlock(id)
		if err != nil {
			return "", err
		}
		lines = append(lines, l)
	}
	for _, w := range s.c.Wires() {
		lines = append(lines, wireString(w))
	}
	if len(lines) == 0 {
		return "empty circuit", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) showBlock(id blocksim.BlockID) (string, error) {
	bi, err := s.c.Block(id)
	if err != nil {
		return "", err
	}
	return blockString(&bi), nil
}

func (s *Session) probe(args []string) (string, error) {
	p, err := blocksim.ParsePortRef(args[1])
	if err != nil {
		return "", err
	}
	if _, err = s.c.Signal(p); err != nil {
		return "", err
	}
	if err = s.rec.Add(trace.Probe{Name: args[0], Port: p}); err != nil {
		return "", err
	}
	return "probe " + args[0] + " on " + p.String(), nil
}

func (s *Session) wave([]string) (string, error) {
	if len(s.rec.Probes()) == 0 {
		return "", errors.New("no probes")
	}
	return strings.TrimSuffix(s.rec.String(), "\n"), nil
}

func (s *Session) plot(args []string) (string, error) {
	n := len(s.rec.Probes())
	if err := s.rec.Save(args[0], "blocksim", plotWidth, plotLane*vg.Length(n+1)); err != nil {
		return "", err
	}
	return "saved " + args[0], nil
}

func (s *Session) reset([]string) (string, error) {
	s.c.Reset()
	s.rec.Reset()
	return "reset", nil
}

// Help returns the help text of all commands, in markdown.
//
func Help() string {
	var b strings.Builder
	b.WriteString("# blocksim commands\n\n")
	b.WriteString("| command | description |\n|---|---|\n")
	cs := append([]*command(nil), commands...)
	sort.Slice(cs, func(i, j int) bool { return cs[i].name < cs[j].name })
	for _, c := range cs {
		b.WriteString("| `" + strings.TrimSpace(c.name+" "+c.args) + "` | " + c.help + " |\n")
	}
	b.WriteString("\nPress **space** on an empty command line to tick, **esc** to quit.\n")
	return b.String()
}

func (s *Session) help(args []string) (string, error) {
	if len(args) == 0 {
		return Help(), nil
	}
	c := lookup(strings.ToLower(args[0]))
	if c == nil {
		return "", errors.Errorf("unknown command %q", args[0])
	}
	return strings.TrimSpace(c.name+" "+c.args) + "\n    " + c.help, nil
}
