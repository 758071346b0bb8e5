package ipc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Handler processes one frame. A non-nil reply is written back to the engine.
type Handler func(f Frame) (*TurnCommands, error)

// Connection is one match's conversation with the game engine: frames in on
// one stream, command stacks out on the other.
type Connection struct {
	reader   *Reader
	out      io.Writer
	handlers map[FrameKind]Handler
}

func NewConnection(in io.Reader, out io.Writer, handlers map[FrameKind]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[FrameKind]Handler)
	}
	return &Connection{
		reader:   NewReader(in),
		out:      out,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(kind FrameKind, handler Handler) {
	c.handlers[kind] = handler
}

// ReadLoop blocks until the match ends. It returns nil on an end frame or a
// clean end of input, and an error for invalid frames or failed handlers:
// the engine's input contract is not something to recover from mid-match.
func (c *Connection) ReadLoop() error {
	for {
		f, err := c.reader.ReadFrame()
		if errors.Is(err, io.EOF) {
			slog.Info("engine closed input")
			return nil
		}
		if err != nil {
			return err
		}

		handler, ok := c.handlers[f.Kind]
		if !ok {
			if f.Kind == KindEnd {
				slog.Info("match over", "turn", f.Turn)
				return nil
			}
			slog.Warn("no handler for frame kind", "kind", f.Kind)
			continue
		}

		resp, err := handler(f)
		if err != nil {
			return fmt.Errorf("%s frame (turn %d): %w", f.Kind, f.Turn, err)
		}

		if resp != nil {
			if err := WriteCommands(c.out, *resp); err != nil {
				return err
			}
			slog.Debug("sent commands", "turn", f.Turn, "build", len(resp.Build), "deploy", len(resp.Deploy))
		}

		if f.Kind == KindEnd {
			return nil
		}
	}
}
