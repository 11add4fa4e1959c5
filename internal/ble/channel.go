package ble

import (
	"github.com/rs/zerolog/log"
)

// FrameWriter is the capability the command channel needs from the
// transport: write one frame, unconfirmed.
type FrameWriter interface {
	WriteFrame(frame []byte) error
}

// Channel sends commands to the fixture over a fire-and-forget transport.
//
// Write errors are deliberately discarded here: color frames self-correct on
// the next tick, and the fixture offers no acknowledgment to wait for. A
// dropped power-off frame does not self-correct; that gap is accepted.
type Channel struct {
	writer FrameWriter
}

// NewChannel creates a command channel on top of the given transport
func NewChannel(writer FrameWriter) *Channel {
	return &Channel{writer: writer}
}

// SendColor sends a set-color command
func (c *Channel) SendColor(r, g, b uint8) {
	if err := c.writer.WriteFrame(ColorFrame(r, g, b)); err != nil {
		log.Debug().Err(err).Msg("Color frame write failed, dropping")
	}
}

// SendPowerOff sends a power-off command
func (c *Channel) SendPowerOff() {
	if err := c.writer.WriteFrame(PowerOffFrame()); err != nil {
		log.Debug().Err(err).Msg("Power-off frame write failed, dropping")
	}
}
