package protocol

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/ryoiwata/reversi/pkg/engine"
	"github.com/ryoiwata/reversi/pkg/reversi"
)

const ProtocolName = "reversi-wire"

// Driver speaks the match-server wire protocol on behalf of an Engine: it
// sends OPEN on startup, relays the server's START/MOVE/ACK/END/BYE lines
// into engine calls, and replies with MOVE lines once the engine picks a
// move. Grounded on the donor's pkg/engine/console/console.go goroutine
// and channel shape (NewDriver(ctx, e, in) (*Driver, <-chan string),
// iox.AsyncCloser-based lifecycle), adapted from a REPL that reacts to
// typed commands into a client that reacts to server messages and drives
// the engine through a full game on its own.
type Driver struct {
	iox.AsyncCloser

	e    *engine.Engine
	name string
	out  chan<- string

	// active reports whether the driver is currently waiting on the engine
	// to pick a move. Grounded on the donor's pkg/engine/uci.Driver's own
	// "active atomic.Bool // user is waiting for engine to move" field;
	// here it guards a StartMessage that arrives while a previous game's
	// move is still being computed, which a well-behaved server shouldn't
	// send but a restarted opponent or a retried connection could.
	active atomic.Bool
}

// NewDriver starts the driver's processing goroutine. in carries server
// lines; the returned channel carries this client's outgoing lines.
func NewDriver(ctx context.Context, e *engine.Engine, name string, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		name:        name,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "%v protocol initialized", ProtocolName)
	d.out <- OpenMessage(d.name)

	var mySide reversi.Side
	var remaining time.Duration

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			msg, err := Parse(line)
			if err != nil {
				logw.Errorf(ctx, "Invalid message %q: %v", line, err)
				continue
			}

			switch m := msg.(type) {
			case StartMessage:
				if d.active.Load() {
					logw.Infof(ctx, "Start arrived mid-search; halting previous game's search")
					d.e.Halt(ctx)
				}

				mySide = m.Color
				remaining = m.RemainingTime
				d.e.Reset(ctx, mySide)
				logw.Infof(ctx, "Start: color=%v opponent=%v time=%v", mySide, m.Opponent, remaining)
				if mySide == reversi.Dark {
					// Dark always moves first.
					d.playMove(ctx, remaining)
				}

			case MoveMessage:
				if err := d.applyOpponentMove(ctx, m.Square); err != nil {
					logw.Errorf(ctx, "Opponent move %v rejected: %v", m.Square, err)
					continue
				}
				d.playMove(ctx, remaining)

			case AckMessage:
				remaining = m.RemainingTime

			case EndMessage:
				logw.Infof(ctx, "Game ended: result=%v reason=%v", m.Result, m.Reason)

			case ByeMessage:
				logw.Infof(ctx, "Bye: %v", m.Stat)
				return
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// applyOpponentMove advances the engine's board state by the opponent's
// relayed move, or a pass when Square is reversi.Pass.
func (d *Driver) applyOpponentMove(ctx context.Context, sq reversi.Square) error {
	if sq == reversi.Pass {
		return d.e.Pass(ctx)
	}
	return d.e.Move(ctx, sq.String())
}

// playMove asks the engine to choose and apply this client's next move,
// then writes the corresponding MOVE line.
func (d *Driver) playMove(ctx context.Context, remaining time.Duration) {
	d.active.Store(true)
	defer d.active.Store(false)

	out, err := d.e.Analyze(ctx, remaining)
	if err != nil {
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}

	pv := <-out
	sq := reversi.Pass
	if len(pv.Moves) > 0 {
		sq = pv.Moves[0]
	}

	var applyErr error
	if sq == reversi.Pass {
		applyErr = d.e.Pass(ctx)
	} else {
		applyErr = d.e.Move(ctx, sq.String())
	}
	if applyErr != nil {
		logw.Errorf(ctx, "Failed to apply chosen move %v: %v", sq, applyErr)
		return
	}

	logw.Infof(ctx, "Playing %v", sq)
	d.out <- MoveLine(sq)
}
