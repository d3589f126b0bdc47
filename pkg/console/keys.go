package console

// KeyType classifies a decoded input event.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyEscape
	KeyCtrlC
)

// KeyEvent is a single decoded key press. Rune is set only for KeyRune.
type KeyEvent struct {
	Type KeyType
	Rune rune
}

// escapeParser decodes raw terminal bytes into key events using a small
// state machine. An incomplete escape sequence degrades to a standalone
// KeyEscape followed by the already-consumed printable byte, so typed
// characters are never silently dropped.
type escapeParser struct {
	state int
}

const (
	stateGround = iota
	stateEsc         // got ESC
	stateCSI         // got ESC [
	stateCSIDelete   // got ESC [ 3
	stateCSIHome     // got ESC [ 1
	stateCSIEnd      // got ESC [ 4
	stateCSIPageUp   // got ESC [ 5
	stateCSIPageDown // got ESC [ 6
	stateSS3         // got ESC O
)

func (p *escapeParser) reset() {
	p.state = stateGround
}

// feed consumes one byte and returns zero or more completed events.
func (p *escapeParser) feed(b byte) []KeyEvent {
	switch p.state {
	case stateGround:
		return p.feedGround(b)

	case stateEsc:
		switch b {
		case '[':
			p.state = stateCSI
			return nil
		case 'O':
			p.state = stateSS3
			return nil
		}
		p.reset()
		return p.abort(b)

	case stateCSI:
		switch b {
		case 'A':
			p.reset()
			return []KeyEvent{{Type: KeyUp}}
		case 'B':
			p.reset()
			return []KeyEvent{{Type: KeyDown}}
		case 'C':
			p.reset()
			return []KeyEvent{{Type: KeyRight}}
		case 'D':
			p.reset()
			return []KeyEvent{{Type: KeyLeft}}
		case 'H':
			p.reset()
			return []KeyEvent{{Type: KeyHome}}
		case 'F':
			p.reset()
			return []KeyEvent{{Type: KeyEnd}}
		case '1':
			p.state = stateCSIHome
			return nil
		case '3':
			p.state = stateCSIDelete
			return nil
		case '4':
			p.state = stateCSIEnd
			return nil
		case '5':
			p.state = stateCSIPageUp
			return nil
		case '6':
			p.state = stateCSIPageDown
			return nil
		}
		if b >= '0' && b <= '9' || b == ';' {
			// Parameter bytes of a longer sequence we do not handle.
			return nil
		}
		p.reset()
		return p.abort(b)

	case stateCSIDelete, stateCSIHome, stateCSIEnd, stateCSIPageUp, stateCSIPageDown:
		state := p.state
		p.reset()
		if b != '~' {
			return p.abort(b)
		}
		switch state {
		case stateCSIDelete:
			return []KeyEvent{{Type: KeyDelete}}
		case stateCSIHome:
			return []KeyEvent{{Type: KeyHome}}
		case stateCSIEnd:
			return []KeyEvent{{Type: KeyEnd}}
		case stateCSIPageUp:
			return []KeyEvent{{Type: KeyPageUp}}
		default:
			return []KeyEvent{{Type: KeyPageDown}}
		}

	case stateSS3:
		p.reset()
		switch b {
		case 'H':
			return []KeyEvent{{Type: KeyHome}}
		case 'F':
			return []KeyEvent{{Type: KeyEnd}}
		}
		return p.abort(b)
	}

	p.reset()
	return nil
}

func (p *escapeParser) feedGround(b byte) []KeyEvent {
	switch b {
	case 27:
		p.state = stateEsc
		return nil
	case 3:
		return []KeyEvent{{Type: KeyCtrlC}}
	case 8, 127:
		return []KeyEvent{{Type: KeyBackspace}}
	case 9:
		return []KeyEvent{{Type: KeyTab}}
	case 10, 13:
		return []KeyEvent{{Type: KeyEnter}}
	}
	if b >= 32 && b <= 126 {
		return []KeyEvent{{Type: KeyRune, Rune: rune(b)}}
	}
	return nil
}

// abort emits the escape event for an abandoned sequence, followed by the
// byte that broke it when that byte is printable.
func (p *escapeParser) abort(b byte) []KeyEvent {
	events := []KeyEvent{{Type: KeyEscape}}
	if b >= 32 && b <= 126 {
		events = append(events, KeyEvent{Type: KeyRune, Rune: rune(b)})
	}
	return events
}
