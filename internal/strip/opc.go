package strip

import (
	"fmt"
	"net"
	"time"
)

// opcSetPixels is the Open Pixel Controller "set pixel colors" command.
const opcSetPixels = 0

// opcDialTimeout bounds connection attempts so a dead controller cannot
// stall a poll cycle indefinitely.
const opcDialTimeout = 5 * time.Second

// OPC is a [Strip] implementation that drives pixels over the Open
// Pixel Controller TCP protocol, as spoken by fcserver and compatible
// controllers.
//
// Each OPC message is a 4-byte header (channel, command, length high,
// length low) followed by 3 bytes per pixel. Fill stages the frame
// locally; Show writes one complete message, so the controller latches
// the whole strip at once.
//
// The connection is established lazily on the first Show and re-dialed
// after a write failure, so a controller restart costs one dropped
// frame rather than a dead driver.
type OPC struct {
	addr    string
	channel uint8
	conn    net.Conn
	frame   []byte // header + pixel data, reused between frames
}

// NewOPC creates an OPC strip driver targeting addr (host:port) on the
// given channel with the given pixel count.
func NewOPC(addr string, channel uint8, pixels int) (*OPC, error) {
	if addr == "" {
		return nil, fmt.Errorf("opc address cannot be empty")
	}
	if pixels < 1 {
		return nil, fmt.Errorf("opc pixel count must be positive, got %d", pixels)
	}
	dataLen := pixels * 3
	if dataLen > 0xFFFF {
		return nil, fmt.Errorf("opc frame too large: %d pixels exceeds protocol limit", pixels)
	}

	frame := make([]byte, 4+dataLen)
	frame[0] = channel
	frame[1] = opcSetPixels
	frame[2] = byte(dataLen >> 8)
	frame[3] = byte(dataLen)

	return &OPC{
		addr:    addr,
		channel: channel,
		frame:   frame,
	}, nil
}

// Fill stages the color on every pixel of the pending frame.
func (o *OPC) Fill(c RGB) error {
	for i := 4; i < len(o.frame); i += 3 {
		o.frame[i] = c.R
		o.frame[i+1] = c.G
		o.frame[i+2] = c.B
	}
	return nil
}

// Show writes the staged frame to the controller as one OPC message.
func (o *OPC) Show() error {
	if o.conn == nil {
		conn, err := net.DialTimeout("tcp", o.addr, opcDialTimeout)
		if err != nil {
			return fmt.Errorf("opc dial %s: %w", o.addr, err)
		}
		o.conn = conn
	}

	if _, err := o.conn.Write(o.frame); err != nil {
		// drop the connection; the next Show re-dials
		_ = o.conn.Close()
		o.conn = nil
		return fmt.Errorf("opc write: %w", err)
	}
	return nil
}

// Close closes the controller connection. Safe to call multiple times.
func (o *OPC) Close() error {
	if o.conn == nil {
		return nil
	}
	err := o.conn.Close()
	o.conn = nil
	return err
}
