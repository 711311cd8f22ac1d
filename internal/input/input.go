// Package input turns raw terminal bytes into per-frame key state and
// discrete game actions.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Action is a discrete key press, reported once per byte received.
type Action int

const (
	ActionNone Action = iota
	ActionLane1
	ActionLane2
	ActionLane3
	ActionLaneLeft
	ActionLaneRight
	ActionSpawnPawn
	ActionSpawnKnight
	ActionSpawnBishop
	ActionSpawnRook
	ActionSpawnQueen
	ActionToggleHitboxes
	ActionToggleHelp
	ActionConfirm
	ActionQuit
)

// Lane returns the lane (1..3) an action selects.
func (a Action) Lane() (int, bool) {
	if a >= ActionLane1 && a <= ActionLane3 {
		return int(a-ActionLane1) + 1, true
	}
	return 0, false
}

// PieceIndex returns the piece table index (0 = pawn .. 4 = queen) an
// action spawns.
func (a Action) PieceIndex() (int, bool) {
	if a >= ActionSpawnPawn && a <= ActionSpawnQueen {
		return int(a - ActionSpawnPawn), true
	}
	return 0, false
}

// Input is the current frame's input state.
type Input struct {
	Quit    bool
	Space   bool
	Enter   bool
	Escape  bool
	Number  int      // last digit pressed within the hold window, -1 if none
	Actions []Action // discrete presses received this frame, in order
	Pressed []byte   // raw bytes received this frame
}

// Has reports whether a was pressed this frame.
func (in Input) Has(a Action) bool {
	for _, got := range in.Actions {
		if got == a {
			return true
		}
	}
	return false
}

type keyState struct {
	quit      time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets held keys so a press that changed screens does not
// carry over into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{numberVal: -1}
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	actions := parse(&s.state, buf, now)

	in := Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Number:  -1,
		Actions: actions,
		Pressed: buf,
	}
	if now.Sub(s.state.number) < keyHoldDuration {
		in.Number = s.state.numberVal
	}
	return in
}

// parse updates held-key timestamps and returns the actions found in buf.
// CSI arrow sequences (ESC [ C/D) select the neighbouring lane.
func parse(state *keyState, buf []byte, now time.Time) []Action {
	var actions []Action
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				actions = append(actions, ActionLaneRight)
				i += 2
				continue
			case 'D':
				actions = append(actions, ActionLaneLeft)
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}
		if a := applyByteToState(state, b, now); a != ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}

// applyByteToState updates key state for a single byte and maps it to an action.
func applyByteToState(state *keyState, b byte, now time.Time) Action {
	switch b {
	case 'q', 'Q':
		state.quit = now
		return ActionQuit
	case ' ':
		state.space = now
		return ActionConfirm
	case '\n', '\r':
		state.enter = now
		return ActionConfirm
	case '\x1b':
		state.escape = now
	case 'b', 'B':
		return ActionToggleHitboxes
	case 'h', 'H':
		return ActionToggleHelp
	case 'a', 'A':
		return ActionLaneLeft
	case 'd', 'D':
		return ActionLaneRight
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
		switch {
		case b >= '1' && b <= '3':
			return ActionLane1 + Action(b-'1')
		case b >= '4' && b <= '8':
			return ActionSpawnPawn + Action(b-'4')
		}
	}
	return ActionNone
}
