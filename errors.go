// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import "github.com/pkg/errors"

// Errors returned by Circuit methods. They are always wrapped with some
// context; use errors.Cause to get at the sentinel value.
//
var (
	ErrNoSuchBlock = errors.New("no such block")
	ErrNoSuchWire  = errors.New("no such wire")
	ErrNoSuchPort  = errors.New("no such port")
	ErrKind        = errors.New("wrong block kind")

	// Connection rejections. A rejected connection leaves the circuit untouched.
	ErrDirection = errors.New("wires must run from an output port to an input port")
	ErrSameBlock = errors.New("cannot wire a block to itself")
	ErrFanIn     = errors.New("input port already connected")
)

func errorf(cause error, format string, args ...interface{}) error {
	return errors.Wrapf(cause, format, args...)
}
