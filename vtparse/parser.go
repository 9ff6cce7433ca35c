// Package vtparse implements a control-sequence tokenizer: a pull-style
// byte-stream parser producing a lazy sequence of Control items (raw
// text runs, C0, ESC, CSI, OSC, and DCS/SIXEL fragments). It never reads
// ahead of what it is given; an incomplete trailing sequence is reported
// via ErrIncomplete so the caller can cache the tail and re-feed it
// prefixed to the next call.
//
// The vocabulary here (CSI/OSC/DEC family names, one-sequence-per-call
// dispatch) is grounded on github.com/danielgatis/go-ansicode's Handler
// taxonomy, but the pull contract is hand-rolled: go-ansicode is a
// push-style decoder (Decoder.Write drives Handler callbacks) and cannot
// expose a Done/Incomplete/Error result without an adapter that
// re-implements the whole state machine anyway. See DESIGN.md for the
// full rationale.
package vtparse

import (
	"errors"
	"strconv"
)

// ErrIncomplete signals that buf does not yet contain a complete control
// item; it is not a real error and is recovered locally by the caller
// caching the unconsumed suffix.
var ErrIncomplete = errors.New("vtparse: incomplete sequence")

// ParseError reports a malformed control sequence.
type ParseError struct {
	Kind string
	Byte byte
}

func (e *ParseError) Error() string {
	return "vtparse: malformed " + e.Kind + " sequence at byte " + strconv.Itoa(int(e.Byte))
}

// Kind discriminates the Control union.
type Kind int

const (
	KindText Kind = iota
	KindC0
	KindEsc
	KindCSI
	KindOSC
	KindDCS
)

// C0 names the recognized single-byte C0 controls (ESC begins a
// multi-byte sequence and is never itself reported as KindC0).
type C0 byte

const (
	C0BEL C0 = 0x07
	C0BS  C0 = 0x08
	C0HT  C0 = 0x09
	C0LF  C0 = 0x0A
	C0VT  C0 = 0x0B
	C0FF  C0 = 0x0C
	C0CR  C0 = 0x0D
	C0SO  C0 = 0x0E
	C0SI  C0 = 0x0F
	C0CAN C0 = 0x18
	C0SUB C0 = 0x1A
)

// EscKind enumerates the short two- and three-byte ESC sequences.
type EscKind int

const (
	EscDECSC    EscKind = iota // ESC 7
	EscDECRC                   // ESC 8
	EscDECKPAM                 // ESC =
	EscDECKPNM                 // ESC >
	EscDECALN                  // ESC # 8
	EscDECBI                   // ESC # 6
	EscDECFI                   // ESC # 9 (forward index)
	EscUnknown
)

// CSI holds a decoded CSI sequence: ESC [ params intermediates final.
type CSI struct {
	Private       bool // leading '?' marker
	Params        []int
	HasParam      []bool // whether the corresponding Params entry was explicitly given (vs. defaulted to 0)
	Intermediates []byte
	Final         byte
}

// Param returns the i'th parameter, or def if absent/not given.
func (c CSI) Param(i, def int) int {
	if i < 0 || i >= len(c.Params) || !c.HasParam[i] {
		return def
	}
	return c.Params[i]
}

// OSC holds a decoded OSC payload: ESC ] payload ST|BEL.
type OSC struct {
	Payload string
}

// DCS holds a decoded Device Control String: ESC P params intermediates
// final-byte data ST. Used here exclusively for SIXEL ('q' final).
type DCS struct {
	Params []int
	Final  byte
	Data   []byte
}

// Control is one tokenized item. Exactly one of the Kind-tagged fields is
// meaningful, selected by Kind.
type Control struct {
	Kind Kind
	Text string
	C0   C0
	Esc  EscKind
	CSI  CSI
	OSC  OSC
	DCS  DCS
}

const (
	esc = 0x1B
	st  = 0x9C
	bel = 0x07
)

// Parse tokenizes the next Control item from the front of buf. On
// success it returns the item and the number of bytes consumed; buf[n:]
// should be passed to the next Parse call unchanged. If buf's prefix
// could begin a sequence that is not yet complete, it returns
// ErrIncomplete and the caller must re-feed buf (with more bytes
// appended) on the next call — nothing is consumed. A malformed sequence
// returns a *ParseError; callers are expected to stop processing the
// remainder of the current input buffer when that happens.
func Parse(buf []byte) (Control, int, error) {
	if len(buf) == 0 {
		return Control{}, 0, ErrIncomplete
	}

	b := buf[0]
	switch {
	case b == esc:
		return parseEsc(buf)
	case isC0(b):
		return Control{Kind: KindC0, C0: C0(b)}, 1, nil
	default:
		return parseText(buf)
	}
}

func isC0(b byte) bool {
	switch C0(b) {
	case C0BEL, C0BS, C0HT, C0LF, C0VT, C0FF, C0CR, C0SO, C0SI, C0CAN, C0SUB:
		return true
	}
	return b < 0x20
}

// parseText consumes the maximal run of bytes that does not open a
// control sequence, decoding it as UTF-8 text for grapheme segmentation
// upstream.
func parseText(buf []byte) (Control, int, error) {
	i := 0
	for i < len(buf) {
		b := buf[i]
		if b == esc || isC0(b) {
			break
		}
		i++
	}
	if i == 0 {
		return Control{}, 0, ErrIncomplete
	}
	return Control{Kind: KindText, Text: string(buf[:i])}, i, nil
}

func parseEsc(buf []byte) (Control, int, error) {
	if len(buf) < 2 {
		return Control{}, 0, ErrIncomplete
	}
	switch buf[1] {
	case '7':
		return Control{Kind: KindEsc, Esc: EscDECSC}, 2, nil
	case '8':
		return Control{Kind: KindEsc, Esc: EscDECRC}, 2, nil
	case '=':
		return Control{Kind: KindEsc, Esc: EscDECKPAM}, 2, nil
	case '>':
		return Control{Kind: KindEsc, Esc: EscDECKPNM}, 2, nil
	case '#':
		if len(buf) < 3 {
			return Control{}, 0, ErrIncomplete
		}
		switch buf[2] {
		case '8':
			return Control{Kind: KindEsc, Esc: EscDECALN}, 3, nil
		case '6':
			return Control{Kind: KindEsc, Esc: EscDECBI}, 3, nil
		case '9':
			return Control{Kind: KindEsc, Esc: EscDECFI}, 3, nil
		default:
			return Control{Kind: KindEsc, Esc: EscUnknown}, 3, nil
		}
	case '[':
		return parseCSI(buf)
	case ']':
		return parseOSC(buf)
	case 'P':
		return parseDCS(buf)
	default:
		return Control{Kind: KindEsc, Esc: EscUnknown}, 2, nil
	}
}

// parseCSI parses ESC [ params intermediates final.
func parseCSI(buf []byte) (Control, int, error) {
	i := 2
	private := false
	if i < len(buf) && buf[i] == '?' {
		private = true
		i++
	}

	paramStart := i
	for i < len(buf) && buf[i] >= 0x30 && buf[i] <= 0x3F && buf[i] != '?' {
		i++
	}
	paramBytes := buf[paramStart:i]

	intermStart := i
	for i < len(buf) && buf[i] >= 0x20 && buf[i] <= 0x2F {
		i++
	}
	intermediates := append([]byte(nil), buf[intermStart:i]...)

	if i >= len(buf) {
		return Control{}, 0, ErrIncomplete
	}
	final := buf[i]
	if final < 0x40 || final > 0x7E {
		return Control{}, 0, &ParseError{Kind: "CSI", Byte: final}
	}
	i++

	params, hasParam := parseParams(paramBytes)
	return Control{
		Kind: KindCSI,
		CSI: CSI{
			Private:       private,
			Params:        params,
			HasParam:      hasParam,
			Intermediates: intermediates,
			Final:         final,
		},
	}, i, nil
}

func parseParams(b []byte) ([]int, []bool) {
	if len(b) == 0 {
		return nil, nil
	}
	var params []int
	var has []bool
	cur := 0
	given := false
	for _, c := range b {
		if c == ';' {
			params = append(params, cur)
			has = append(has, given)
			cur = 0
			given = false
			continue
		}
		if c >= '0' && c <= '9' {
			cur = cur*10 + int(c-'0')
			given = true
		}
	}
	params = append(params, cur)
	has = append(has, given)
	return params, has
}

// parseOSC parses ESC ] payload terminated by ST (ESC \ or 0x9C) or BEL.
func parseOSC(buf []byte) (Control, int, error) {
	i := 2
	for i < len(buf) {
		if buf[i] == bel {
			return Control{Kind: KindOSC, OSC: OSC{Payload: string(buf[2:i])}}, i + 1, nil
		}
		if buf[i] == byte(st) {
			return Control{Kind: KindOSC, OSC: OSC{Payload: string(buf[2:i])}}, i + 1, nil
		}
		if buf[i] == esc {
			if i+1 >= len(buf) {
				return Control{}, 0, ErrIncomplete
			}
			if buf[i+1] == '\\' {
				return Control{Kind: KindOSC, OSC: OSC{Payload: string(buf[2:i])}}, i + 2, nil
			}
			return Control{}, 0, &ParseError{Kind: "OSC", Byte: buf[i+1]}
		}
		i++
	}
	return Control{}, 0, ErrIncomplete
}

// parseDCS parses ESC P params intermediates final data ST, used here
// for SIXEL payloads (final == 'q').
func parseDCS(buf []byte) (Control, int, error) {
	i := 2
	paramStart := i
	for i < len(buf) && (buf[i] >= '0' && buf[i] <= '9' || buf[i] == ';') {
		i++
	}
	paramBytes := buf[paramStart:i]

	if i >= len(buf) {
		return Control{}, 0, ErrIncomplete
	}
	final := buf[i]
	i++
	dataStart := i

	for i < len(buf) {
		if buf[i] == byte(st) {
			params, _ := parseParams(paramBytes)
			return Control{Kind: KindDCS, DCS: DCS{Params: params, Final: final, Data: append([]byte(nil), buf[dataStart:i]...)}}, i + 1, nil
		}
		if buf[i] == esc {
			if i+1 >= len(buf) {
				return Control{}, 0, ErrIncomplete
			}
			if buf[i+1] == '\\' {
				params, _ := parseParams(paramBytes)
				return Control{Kind: KindDCS, DCS: DCS{Params: params, Final: final, Data: append([]byte(nil), buf[dataStart:i]...)}}, i + 2, nil
			}
		}
		i++
	}
	return Control{}, 0, ErrIncomplete
}
