package term

import "github.com/gridterm/gridterm/grid"

// Modifiers is a bitset of key modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// KeyName enumerates non-printable keys recognized by the keymap. A
// zero KeyName means "use Key.Rune" for a printable character.
type KeyName int

const (
	KeyNone KeyName = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

// Key is a structured key event: either a named key or a printable rune,
// with an accompanying modifier set.
type Key struct {
	Name KeyName
	Rune rune
	Mods Modifiers
}

// encodeKey translates a logical key event into the bytes a real tty
// would send, honoring application-cursor and CRLF-newline modes.
// Keyboard-lock is checked by the caller before this is reached.
func encodeKey(k Key, modes grid.Mode) []byte {
	appCursor := modes.Has(grid.ModeApplicationCursor)
	crlf := modes.Has(grid.ModeCRLF)

	cursorSeq := func(normal, app byte) []byte {
		if appCursor {
			return []byte{0x1B, 'O', app}
		}
		return []byte{0x1B, '[', normal}
	}

	switch k.Name {
	case KeyUp:
		return cursorSeq('A', 'A')
	case KeyDown:
		return cursorSeq('B', 'B')
	case KeyRight:
		return cursorSeq('C', 'C')
	case KeyLeft:
		return cursorSeq('D', 'D')
	case KeyHome:
		return []byte("\x1b[H")
	case KeyEnd:
		return []byte("\x1b[F")
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	case KeyInsert:
		return []byte("\x1b[2~")
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyF1:
		return []byte("\x1bOP")
	case KeyF2:
		return []byte("\x1bOQ")
	case KeyF3:
		return []byte("\x1bOR")
	case KeyF4:
		return []byte("\x1bOS")
	case KeyTab:
		if k.Mods&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case KeyBackspace:
		return []byte{0x7F}
	case KeyEscape:
		return []byte{0x1B}
	case KeyEnter:
		if crlf {
			return []byte{'\r', '\n'}
		}
		return []byte{'\r'}
	}

	if k.Rune != 0 {
		if k.Mods&ModCtrl != 0 {
			r := k.Rune | 0x20 // fold to lowercase range for control-mapping
			if r >= 'a' && r <= 'z' {
				return []byte{byte(r-'a') + 1}
			}
		}
		if k.Mods&ModAlt != 0 {
			return append([]byte{0x1B}, []byte(string(k.Rune))...)
		}
		return []byte(string(k.Rune))
	}
	return nil
}

// bracketPaste wraps data in bracketed-paste framing (CSI 200~ ... CSI
// 201~) when the mode is enabled, else returns data unchanged.
func bracketPaste(data string, modes grid.Mode) []byte {
	if !modes.Has(grid.ModeBracketedPaste) {
		return []byte(data)
	}
	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	return out
}
