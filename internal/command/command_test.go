// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package command_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/blocksim"
	"github.com/db47h/blocksim/internal/command"
	"github.com/db47h/blocksim/internal/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSession(t *testing.T) *command.Session {
	return command.New(config.Default(), zaptest.NewLogger(t))
}

// exec runs a command that must succeed.
func exec(t *testing.T, s *command.Session, line string) string {
	t.Helper()
	out, err := s.Exec(line)
	require.NoError(t, err, line)
	return out
}

// notCircuit builds INPUT(1) -> NOT(2) -> OUTPUT(3).
func notCircuit(t *testing.T, s *command.Session) {
	t.Helper()
	assert.Equal(t, "added 1 (INPUT) at (500,300)", exec(t, s, "add input"))
	assert.Equal(t, "added 2 (NOT) at (120,40)", exec(t, s, "add NOT 113 47"))
	assert.Equal(t, "added 3 (OUTPUT) at (0,0)", exec(t, s, "add output 0 0"))
	assert.Equal(t, "wire 1: 1.out -> 2.in", exec(t, s, "connect 1.out 2.in"))
	assert.Equal(t, "wire 2: 2.out -> 3.in", exec(t, s, "connect 2.out 3.in"))
}

func TestSession_edit(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, "empty circuit", exec(t, s, "show"))
	notCircuit(t, s)

	assert.Equal(t, "1 INPUT (500,300) stream=110 idx=0 out=0", exec(t, s, "stream 1 1 1 0"))
	assert.Equal(t, "1 INPUT (500,300) stream=11 idx=0 out=0", exec(t, s, "backspace 1"))
	assert.Equal(t, "1 INPUT (500,300) stream=110 idx=0 out=0", exec(t, s, "type 1 0"))

	out := exec(t, s, "tick 3")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for i, l := range lines {
		assert.True(t, strings.HasPrefix(l, "tick "+string(rune('1'+i))+": settled in "), l)
	}
	assert.Equal(t, "3 OUTPUT (0,0) in=0 history=001", exec(t, s, "show 3"))
	assert.Equal(t, "1 INPUT (500,300) stream=110 idx=3 out=1", exec(t, s, "show 1"))
	assert.Equal(t, "3 OUTPUT (0,0) in=0 history=", exec(t, s, "clear 3"))

	assert.Equal(t, "moved block 2 to (200,100)", exec(t, s, "move 2 195 105"))
	assert.Equal(t, strings.Join([]string{
		"1 INPUT (500,300) stream=110 idx=3 out=1",
		"2 NOT (200,100) in=1 out=0",
		"3 OUTPUT (0,0) in=0 history=",
		"wire 1: 1.out -> 2.in =1",
		"wire 2: 2.out -> 3.in =0",
	}, "\n"), exec(t, s, "show"))

	assert.Equal(t, "removed block 2", exec(t, s, "rm 2"))
	assert.Equal(t, strings.Join([]string{
		"1 INPUT (500,300) stream=110 idx=3 out=1",
		"3 OUTPUT (0,0) in=0 history=",
	}, "\n"), exec(t, s, "show"))
	assert.Equal(t, 2, s.Circuit().Size())
}

func TestSession_errors(t *testing.T) {
	s := newSession(t)
	notCircuit(t, s)

	td := []struct {
		line  string
		err   string
		cause error
	}{
		{"bogus", `unknown command "bogus"`, nil},
		{"add", "usage: add KIND [X Y]", nil},
		{"add nand", `unknown block kind "nand"`, nil},
		{"add and 1", "expected both X and Y", nil},
		{"add and x 1", `invalid X "x"`, nil},
		{"tick 0", `invalid tick count "0" (1 to 10000)`, nil},
		{"tick 10001", `invalid tick count "10001" (1 to 10000)`, nil},
		{"connect 3.in 1.out", "", blocksim.ErrDirection},
		{"connect 1.out 3.in", "", blocksim.ErrFanIn},
		{"connect 2.out 2.in", "", blocksim.ErrSameBlock},
		{"connect 1.out 9.in", "", blocksim.ErrNoSuchBlock},
		{"connect 1.out 3.x", "", blocksim.ErrNoSuchPort},
		{"connect 1out 3.in", `in "1out" at pos 5: expected '.' after block ID`, nil},
		{"disconnect 7", "", blocksim.ErrNoSuchWire},
		{"rm 9", "", blocksim.ErrNoSuchBlock},
		{"stream 3 01", "", blocksim.ErrKind},
		{"clear 1", "", blocksim.ErrKind},
		{"place cpu", `unknown prefab "cpu"`, nil},
		{"help me", `unknown command "me"`, nil},
		{"wave", "no probes", nil},
		{"probe x 9.out", "", blocksim.ErrNoSuchBlock},
	}
	for _, d := range td {
		_, err := s.Exec(d.line)
		if !assert.Error(t, err, d.line) {
			continue
		}
		if d.cause != nil {
			assert.Equal(t, d.cause, errors.Cause(err), d.line)
		} else {
			assert.EqualError(t, err, d.err, d.line)
		}
	}
	assert.Len(t, s.Circuit().Wires(), 2)
	assert.Equal(t, 3, s.Circuit().Size())

	_, err := s.Exec("quit")
	assert.Equal(t, command.ErrQuit, err)
	out, err := s.Exec("  # comment")
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestSession_probes(t *testing.T) {
	s := newSession(t)
	notCircuit(t, s)
	exec(t, s, "stream 1 110")
	assert.Equal(t, "probe a on 1.out", exec(t, s, "probe a 1.out"))
	exec(t, s, "probe n 2.out")
	_, err := s.Exec("probe n 3.in")
	assert.EqualError(t, err, `duplicate probe name "n"`)

	exec(t, s, "tick 3")
	assert.Equal(t, "a |_‾‾\nn |‾__", exec(t, s, "wave"))

	name := filepath.Join(t.TempDir(), "wave.png")
	assert.Equal(t, "saved "+name, exec(t, s, "plot "+name))
	fi, err := os.Stat(name)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	assert.Equal(t, "reset", exec(t, s, "reset"))
	assert.Zero(t, s.Recorder().Len())
	assert.Equal(t, "3 OUTPUT (0,0) in=0 history=", exec(t, s, "show 3"))
	exec(t, s, "tick")
	assert.Equal(t, "3 OUTPUT (0,0) in=1 history=1", exec(t, s, "show 3"))
}

func TestSession_tickSummary(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.SettleLimit = 8
	s := command.New(cfg, zaptest.NewLogger(t))
	// three NOT gates in a ring never settle
	for i := 0; i < 3; i++ {
		exec(t, s, "add not")
	}
	exec(t, s, "connect 1.out 2.in")
	exec(t, s, "connect 2.out 3.in")
	exec(t, s, "connect 3.out 1.in")

	out := exec(t, s, "tick 16")
	assert.Len(t, strings.Split(out, "\n"), 16)

	out = exec(t, s, "tick 100")
	assert.Equal(t, "ran 100 ticks, 100 did not settle\ntick 116: did not settle after 8 passes", out)
	assert.Equal(t, uint64(116), s.Circuit().Ticks())
}

func TestSession_place(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, strings.Join([]string{
		"placed halfadder: blocks 1 2",
		"  in  a: 1.a 2.a",
		"  in  b: 1.b 2.b",
		"  out c: 2.out",
		"  out s: 1.out",
	}, "\n"), exec(t, s, "place HalfAdder 0 0"))
	assert.Contains(t, exec(t, s, "prefabs"), "serialadder")
}

func TestSession_help(t *testing.T) {
	s := newSession(t)
	assert.Contains(t, exec(t, s, "help"), "| `add KIND [X Y]` |")
	assert.Equal(t, "tick [N]\n    run N clock ticks (default 1)", exec(t, s, "help tick"))
	assert.Equal(t, command.Help(), exec(t, s, "help"))
}

func TestSession_Run(t *testing.T) {
	s := newSession(t)
	script := `# build a toggle
place toggle 0 0
add output
connect 1.out 3.in

tick 4
show 3
quit
tick
`
	var out strings.Builder
	require.NoError(t, s.Run(strings.NewReader(script), &out))
	assert.True(t, strings.HasSuffix(out.String(), "3 OUTPUT (500,300) in=1 history=1010\n"), out.String())
	assert.Equal(t, uint64(4), s.Circuit().Ticks())

	s = newSession(t)
	err := s.Run(strings.NewReader("add input\n\nbogus\n"), &out)
	assert.EqualError(t, err, `line 3: unknown command "bogus"`)
}
