// Package protocol implements the line-based wire protocol a Reversi match
// server speaks: OPEN/START/MOVE/ACK/END/BYE lines, grounded on
// original_source/src/message.rs's ServerMessage enum and client-side
// message builders, and on the match loop in
// original_source/src/game/base.rs that consumes them.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ryoiwata/reversi/pkg/reversi"
)

// Result is the outcome of a finished game, as reported by the server.
type Result int

const (
	Win Result = iota
	Lose
	Tie
)

func (r Result) String() string {
	switch r {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Tie:
		return "Tie"
	default:
		return "Unknown"
	}
}

func parseResult(s string) (Result, error) {
	switch strings.ToUpper(s) {
	case "WIN":
		return Win, nil
	case "LOSE":
		return Lose, nil
	case "TIE":
		return Tie, nil
	default:
		return 0, fmt.Errorf("invalid result %q", s)
	}
}

// ParseColor maps the server's color token to a Side. Grounded on
// original_source/src/message/server.rs::parse_start's "BLACK"/"WHITE"
// tokens, mapped onto the engine's Dark/Light sides.
func ParseColor(s string) (reversi.Side, error) {
	switch s {
	case "BLACK":
		return reversi.Dark, nil
	case "WHITE":
		return reversi.Light, nil
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
}

// ColorString is the inverse of ParseColor.
func ColorString(side reversi.Side) string {
	if side == reversi.Dark {
		return "BLACK"
	}
	return "WHITE"
}

// Message is a parsed server-to-client line.
type Message interface {
	isMessage()
}

// StartMessage announces a new game and this client's color.
type StartMessage struct {
	Color         reversi.Side
	Opponent      string
	RemainingTime time.Duration
}

func (StartMessage) isMessage() {}

// MoveMessage relays the opponent's move. Square is reversi.Pass when the
// move was a forfeited turn.
type MoveMessage struct {
	Square reversi.Square
}

func (MoveMessage) isMessage() {}

// AckMessage acknowledges a move the client sent and reports updated time.
type AckMessage struct {
	RemainingTime time.Duration
}

func (AckMessage) isMessage() {}

// EndMessage reports a finished game.
type EndMessage struct {
	Result            Result
	PlayerDiscCount   int
	OpponentDiscCount int
	Reason            string
}

func (EndMessage) isMessage() {}

// ByeMessage reports the server is done with this client.
type ByeMessage struct {
	Stat string
}

func (ByeMessage) isMessage() {}

// Parse decodes one server line into a Message. Unlike
// original_source/src/message/server.rs's own parse function -- which
// dispatches "ACK" and "BYE" to its MOVE parser, a copy-paste slip that
// left parse_ack/parse_bye dead code -- this parses each command with its
// own grammar.
func Parse(line string) (Message, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty message")
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "START":
		return parseStart(args)
	case "MOVE":
		return parseMove(args)
	case "ACK":
		return parseAck(args)
	case "END":
		return parseEnd(args)
	case "BYE":
		return parseBye(args)
	default:
		return nil, fmt.Errorf("invalid command %q", cmd)
	}
}

func parseStart(args []string) (Message, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("START: want 3 fields, got %d", len(args))
	}
	color, err := ParseColor(args[0])
	if err != nil {
		return nil, fmt.Errorf("START: %w", err)
	}
	ms, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("START: invalid time %q: %w", args[2], err)
	}
	return StartMessage{Color: color, Opponent: args[1], RemainingTime: time.Duration(ms) * time.Millisecond}, nil
}

func parseMove(args []string) (Message, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("MOVE: want 1 field, got %d", len(args))
	}
	if args[0] == "PASS" {
		return MoveMessage{Square: reversi.Pass}, nil
	}
	sq, err := reversi.ParseSquare(args[0])
	if err != nil {
		return nil, fmt.Errorf("MOVE: %w", err)
	}
	return MoveMessage{Square: sq}, nil
}

func parseAck(args []string) (Message, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ACK: want 1 field, got %d", len(args))
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("ACK: invalid time %q: %w", args[0], err)
	}
	return AckMessage{RemainingTime: time.Duration(ms) * time.Millisecond}, nil
}

func parseEnd(args []string) (Message, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("END: want 4 fields, got %d", len(args))
	}
	result, err := parseResult(args[0])
	if err != nil {
		return nil, fmt.Errorf("END: %w", err)
	}
	playerCount, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("END: invalid player count %q: %w", args[1], err)
	}
	opCount, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("END: invalid opponent count %q: %w", args[2], err)
	}
	return EndMessage{Result: result, PlayerDiscCount: playerCount, OpponentDiscCount: opCount, Reason: args[3]}, nil
}

func parseBye(args []string) (Message, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("BYE: want 1 field, got %d", len(args))
	}
	return ByeMessage{Stat: args[0]}, nil
}

// OpenMessage is the client's handshake line. Grounded on
// original_source/src/message.rs::open_message.
func OpenMessage(name string) string {
	return "OPEN " + name
}

// MoveLine is the client's move line. Grounded on
// original_source/src/message.rs::move_message/pass_message; sq ==
// reversi.Pass produces "MOVE PASS".
func MoveLine(sq reversi.Square) string {
	if sq == reversi.Pass {
		return "MOVE PASS"
	}
	return "MOVE " + sq.String()
}
