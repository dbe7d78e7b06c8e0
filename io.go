// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import (
	"strings"

	"go.uber.org/zap"
)

// FilterBits returns s with every character other than '0' and '1' removed.
//
func FilterBits(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '0' || r == '1' {
			return r
		}
		return -1
	}, s)
}

// bits renders signals as a string of '0' and '1'.
//
func bits(v []bool) string {
	var sb strings.Builder
	sb.Grow(len(v))
	for _, b := range v {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Input blocks.
//
// The stream is kept in typing order: the last typed character is the most
// significant bit and streams are emitted lsb first.

func (b *block) setStream(s string) {
	b.stream = FilterBits(s)
	b.cursor = 0
}

// advanceBit drives the next unread bit onto the output, or 0 once the stream
// is exhausted.
//
func (b *block) advanceBit() {
	var v bool
	if b.cursor < len(b.stream) {
		v = b.stream[len(b.stream)-1-b.cursor] == '1'
		b.cursor++
	}
	b.out.signal = v
}

// Output blocks.

func (b *block) captureBit() {
	b.captured = append(b.captured, b.in[0].signal)
}

// history returns captured bits, most recent first.
//
func (b *block) history() string {
	v := make([]bool, len(b.captured))
	for i, s := range b.captured {
		v[len(v)-1-i] = s
	}
	return bits(v)
}

// SetInputStream replaces the bit stream of an Input block with the '0' and
// '1' characters of raw, silently dropping any other character, and rewinds
// the block's read cursor. The output signal is left as is until the next
// tick.
//
func (c *Circuit) SetInputStream(id BlockID, raw string) error {
	b, err := c.kindBlock(id, Input)
	if err != nil {
		return err
	}
	b.setStream(raw)
	c.log.Debug("input stream set", zap.Uint64("block", uint64(id)), zap.String("stream", b.stream))
	return nil
}

// AppendInputStream appends text to the stream of an Input block, as when
// typing into it. Like SetInputStream, it rewinds the read cursor.
//
func (c *Circuit) AppendInputStream(id BlockID, text string) error {
	b, err := c.kindBlock(id, Input)
	if err != nil {
		return err
	}
	return c.SetInputStream(id, b.stream+text)
}

// TrimInputStream removes the last typed bit from the stream of an Input
// block and rewinds the read cursor.
//
func (c *Circuit) TrimInputStream(id BlockID) error {
	b, err := c.kindBlock(id, Input)
	if err != nil {
		return err
	}
	s := b.stream
	if len(s) > 0 {
		s = s[:len(s)-1]
	}
	return c.SetInputStream(id, s)
}

// ClearHistory discards the bits captured by an Output block.
//
func (c *Circuit) ClearHistory(id BlockID) error {
	b, err := c.kindBlock(id, Output)
	if err != nil {
		return err
	}
	b.captured = nil
	return nil
}
