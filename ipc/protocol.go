package ipc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// FrameKind classifies one line of engine input.
type FrameKind int

const (
	KindConfig FrameKind = iota // first line of a match: the unit/cost table
	KindTurn                    // turnInfo[0] == 0: plan and reply
	KindAction                  // turnInfo[0] == 1: combat events, no reply
	KindEnd                     // turnInfo[0] == 2: match over
)

func (k FrameKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTurn:
		return "turn"
	case KindAction:
		return "action"
	case KindEnd:
		return "end"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Frame is one validated line from the engine. Data is kept raw so handlers
// decode into their concrete type.
type Frame struct {
	Kind FrameKind
	Turn int
	Data json.RawMessage
}

// ErrInvalidFrame marks input that breaks the engine's frame contract.
var ErrInvalidFrame = errors.New("invalid frame")

// maxFrameSize bounds one line. Action frames late in a match are the largest.
const maxFrameSize = 8 << 20

// Reader splits engine output into frames, one JSON document per line.
type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxFrameSize)
	return &Reader{sc: sc}
}

// ReadFrame returns the next frame, io.EOF when the stream ends cleanly, or
// an error wrapping ErrInvalidFrame when a line fails validation.
func (r *Reader) ReadFrame() (Frame, error) {
	for r.sc.Scan() {
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		data := make([]byte, len(line))
		copy(data, line)
		return classify(data)
	}
	if err := r.sc.Err(); err != nil {
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}
	return Frame{}, io.EOF
}

type probe struct {
	TurnInfo []json.Number `json:"turnInfo"`
}

func classify(data []byte) (Frame, error) {
	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	if p.TurnInfo == nil {
		if err := validate(configSchema, data); err != nil {
			return Frame{}, fmt.Errorf("config frame: %w", err)
		}
		return Frame{Kind: KindConfig, Data: data}, nil
	}

	if len(p.TurnInfo) == 0 {
		return Frame{}, fmt.Errorf("%w: empty turnInfo", ErrInvalidFrame)
	}
	phase, err := p.TurnInfo[0].Int64()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: turnInfo[0]: %v", ErrInvalidFrame, err)
	}

	f := Frame{Data: data}
	switch phase {
	case 0:
		f.Kind = KindTurn
		err = validate(turnSchema, data)
	case 1:
		f.Kind = KindAction
		err = validate(actionSchema, data)
	case 2:
		f.Kind = KindEnd
		err = validate(endSchema, data)
	default:
		return Frame{}, fmt.Errorf("%w: unknown turnInfo phase %d", ErrInvalidFrame, phase)
	}
	if err != nil {
		return Frame{}, fmt.Errorf("%s frame: %w", f.Kind, err)
	}
	if len(p.TurnInfo) > 1 {
		turn, _ := p.TurnInfo[1].Int64()
		f.Turn = int(turn)
	}
	return f, nil
}

// WriteCommands sends the two reply lines the engine expects after a turn
// frame: the build stack, then the deploy stack.
func WriteCommands(w io.Writer, cmds TurnCommands) error {
	build := cmds.Build
	if build == nil {
		build = []Placement{}
	}
	deploy := cmds.Deploy
	if deploy == nil {
		deploy = []Placement{}
	}

	var buf bytes.Buffer
	for _, stack := range [][]Placement{build, deploy} {
		line, err := json.Marshal(stack)
		if err != nil {
			return fmt.Errorf("marshal stack: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write commands: %w", err)
	}
	return nil
}
