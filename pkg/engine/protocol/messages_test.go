package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryoiwata/reversi/pkg/reversi"
)

func TestParseStart(t *testing.T) {
	msg, err := Parse("START BLACK opponent-1 60000")
	require.NoError(t, err)

	start, ok := msg.(StartMessage)
	require.True(t, ok)
	assert.Equal(t, reversi.Dark, start.Color)
	assert.Equal(t, "opponent-1", start.Opponent)
	assert.Equal(t, 60*time.Second, start.RemainingTime)
}

func TestParseMove(t *testing.T) {
	msg, err := Parse("MOVE D3")
	require.NoError(t, err)
	d3, _ := reversi.ParseSquare("D3")
	assert.Equal(t, MoveMessage{Square: d3}, msg)
}

func TestParseMovePass(t *testing.T) {
	msg, err := Parse("MOVE PASS")
	require.NoError(t, err)
	assert.Equal(t, MoveMessage{Square: reversi.Pass}, msg)
}

func TestParseAck(t *testing.T) {
	msg, err := Parse("ACK 45000")
	require.NoError(t, err)
	assert.Equal(t, AckMessage{RemainingTime: 45 * time.Second}, msg)
}

func TestParseEnd(t *testing.T) {
	msg, err := Parse("END Win 34 30 normal")
	require.NoError(t, err)
	assert.Equal(t, EndMessage{Result: Win, PlayerDiscCount: 34, OpponentDiscCount: 30, Reason: "normal"}, msg)
}

func TestParseBye(t *testing.T) {
	msg, err := Parse("BYE done")
	require.NoError(t, err)
	assert.Equal(t, ByeMessage{Stat: "done"}, msg)
}

func TestParseInvalidCommand(t *testing.T) {
	_, err := Parse("FOO bar")
	assert.Error(t, err)
}

func TestParseEmptyLine(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestOpenMessage(t *testing.T) {
	assert.Equal(t, "OPEN player1", OpenMessage("player1"))
}

func TestMoveLine(t *testing.T) {
	d3, _ := reversi.ParseSquare("D3")
	assert.Equal(t, "MOVE D3", MoveLine(d3))
	assert.Equal(t, "MOVE PASS", MoveLine(reversi.Pass))
}

func TestColorRoundTrip(t *testing.T) {
	for _, side := range []reversi.Side{reversi.Dark, reversi.Light} {
		got, err := ParseColor(ColorString(side))
		require.NoError(t, err)
		assert.Equal(t, side, got)
	}
}
