// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseKind returns the block kind for name. Matching is case insensitive and
// "MEMORY" is accepted as an alias for "M".
//
func ParseKind(name string) (Kind, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "MEMORY" || n == "MEM" {
		return Memory, nil
	}
	for k, kn := range kindNames {
		if n == kn {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown block kind %q", name)
}

// ParseBlockID parses a decimal block ID.
//
func ParseBlockID(s string) (BlockID, error) {
	n, err := parseID(s)
	return BlockID(n), err
}

// ParseWireID parses a decimal wire ID.
//
func ParseWireID(s string) (WireID, error) {
	n, err := parseID(s)
	return WireID(n), err
}

func parseID(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, parseError(s, 0, "expected a positive integer ID")
	}
	return n, nil
}

// ParsePortRef parses a port reference of the form "block.port", for
// example:
//
//	ParsePortRef("3.out") // returns PortRef{Block: 3, Port: "out"}
//
func ParsePortRef(s string) (PortRef, error) {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return PortRef{}, parseError(s, len(s), "expected '.' after block ID")
	}
	id, err := ParseBlockID(s[:i])
	if err != nil {
		return PortRef{}, parseError(s, 0, "expected block ID")
	}
	name := s[i+1:]
	if name == "" {
		return PortRef{}, parseError(s, i+1, "missing port name")
	}
	for j, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' || j > 0 && r >= '0' && r <= '9') {
			return PortRef{}, parseError(s, i+1+j, "invalid character in port name")
		}
	}
	return PortRef{Block: id, Port: name}, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
