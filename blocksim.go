// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSettleLimit is the default maximum number of propagate/recompute
// passes run by Settle before giving up on a circuit that does not converge.
//
const DefaultSettleLimit = 256

// BlockID identifies a block in a Circuit. Block IDs start at 1 and are never
// reused by a given Circuit, so a stale ID always fails lookups.
//
type BlockID uint64

// WireID identifies a wire in a Circuit. Like block IDs, wire IDs are never
// reused.
//
type WireID uint64

// Point is a block position. The engine stores it on behalf of editors and
// never reads it.
//
type Point struct {
	X, Y int
}

// An Option configures a Circuit.
//
type Option func(c *Circuit)

// WithLogger sets the logger used by the circuit. The default is a no-op
// logger.
//
func WithLogger(l *zap.Logger) Option {
	return func(c *Circuit) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSettleLimit sets the maximum number of passes run by Settle. Values
// less than 1 select DefaultSettleLimit.
//
func WithSettleLimit(n int) Option {
	return func(c *Circuit) {
		if n < 1 {
			n = DefaultSettleLimit
		}
		c.limit = n
	}
}

// A TickHook is called at the end of every clock tick, once the circuit is
// back in the Idle phase.
//
type TickHook func(c *Circuit, r TickReport)

// Circuit owns a set of blocks and the wires between them and runs the
// simulation one clock tick at a time.
//
// Blocks and wires live in arenas keyed by ID. Wires and ports only refer to
// each other through IDs and PortRefs, never through pointers, so removing a
// block cannot leave a live reference behind.
//
// A Circuit is not safe for concurrent use.
//
type Circuit struct {
	id    uuid.UUID
	log   *zap.Logger
	limit int

	blocks map[BlockID]*block
	border []BlockID // insertion order
	wires  map[WireID]*wire
	worder []WireID // insertion order

	lastBlock BlockID
	lastWire  WireID

	phase Phase
	ticks uint64
	hooks []TickHook
}

// New returns a new empty circuit.
//
func New(opts ...Option) *Circuit {
	c := &Circuit{
		id:     uuid.New(),
		log:    zap.NewNop(),
		limit:  DefaultSettleLimit,
		blocks: make(map[BlockID]*block),
		wires:  make(map[WireID]*wire),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With(zap.Stringer("circuit", c.id))
	return c
}

// ID returns the unique ID of this circuit instance.
//
func (c *Circuit) ID() uuid.UUID { return c.id }

// SettleLimit returns the maximum number of passes run by Settle.
//
func (c *Circuit) SettleLimit() int { return c.limit }

// Size returns the block count in the circuit.
//
func (c *Circuit) Size() int { return len(c.blocks) }

// Ticks returns the number of clock ticks run since the circuit was created or
// last reset.
//
func (c *Circuit) Ticks() uint64 { return c.ticks }

// Phase returns the current tick phase. Outside of Tick, this is always
// PhaseIdle.
//
func (c *Circuit) Phase() Phase { return c.phase }

// OnTick registers a hook called at the end of every tick.
//
func (c *Circuit) OnTick(h TickHook) {
	c.hooks = append(c.hooks, h)
}

// AddBlock adds a new block of the given kind at position pos and returns
// its ID. It panics if k is not a valid Kind.
//
func (c *Circuit) AddBlock(k Kind, pos Point) BlockID {
	if !k.Valid() {
		panic("blocksim: invalid block kind " + k.String())
	}
	c.lastBlock++
	id := c.lastBlock
	c.blocks[id] = newBlock(id, k, pos)
	c.border = append(c.border, id)
	c.log.Debug("block added", zap.Uint64("block", uint64(id)), zap.Stringer("kind", k))
	return id
}

// MoveBlock sets the position of a block.
//
func (c *Circuit) MoveBlock(id BlockID, pos Point) error {
	b, err := c.block(id)
	if err != nil {
		return err
	}
	b.pos = pos
	return nil
}

// Blocks returns the IDs of all blocks in insertion order.
//
func (c *Circuit) Blocks() []BlockID {
	return append([]BlockID(nil), c.border...)
}

func (c *Circuit) block(id BlockID) (*block, error) {
	b, ok := c.blocks[id]
	if !ok {
		return nil, errorf(ErrNoSuchBlock, "block %d", id)
	}
	return b, nil
}

// kindBlock returns block id if it is of kind k.
//
func (c *Circuit) kindBlock(id BlockID, k Kind) (*block, error) {
	b, err := c.block(id)
	if err != nil {
		return nil, err
	}
	if b.kind != k {
		return nil, errorf(ErrKind, "block %d is %s, not %s", id, b.kind, k)
	}
	return b, nil
}

// each calls fn for every block in insertion order.
//
func (c *Circuit) each(fn func(b *block)) {
	for _, id := range c.border {
		fn(c.blocks[id])
	}
}
