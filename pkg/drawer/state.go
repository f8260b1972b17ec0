package drawer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-drift/drawer/pkg/errors"
)

// MenuState is the resting state of the drawer. The numeric values are the
// persisted tags.
type MenuState int32

const (
	// MenuClosed means the content covers the menu.
	MenuClosed MenuState = 1
	// MenuOpened means the content is offset by the full menu width.
	MenuOpened MenuState = 2
)

func (s MenuState) String() string {
	switch s {
	case MenuClosed:
		return "closed"
	case MenuOpened:
		return "opened"
	default:
		return fmt.Sprintf("MenuState(%d)", int32(s))
	}
}

func (s MenuState) valid() bool {
	return s == MenuClosed || s == MenuOpened
}

// Saved state layout, all integers big-endian:
//
//	magic   [4]byte  "DRWS"
//	version uint8    savedStateVersion
//	n       uint32   length of the host payload
//	super   [n]byte  host payload, passed through untouched
//	state   int32    MenuState tag
const (
	savedStateMagic   = "DRWS"
	savedStateVersion = 1
	savedStateHeader  = len(savedStateMagic) + 1 + 4
)

// SavedState is the persisted form of a drawer: the host's own opaque state
// followed by the menu state tag.
type SavedState struct {
	Super []byte
	Menu  MenuState
}

// MarshalBinary encodes the saved state.
func (s SavedState) MarshalBinary() ([]byte, error) {
	if !s.Menu.valid() {
		return nil, fmt.Errorf("cannot save %s", s.Menu)
	}
	if uint64(len(s.Super)) > math.MaxUint32 {
		return nil, fmt.Errorf("host payload too large: %d bytes", len(s.Super))
	}
	var buf bytes.Buffer
	buf.Grow(savedStateHeader + len(s.Super) + 4)
	buf.WriteString(savedStateMagic)
	buf.WriteByte(savedStateVersion)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(s.Super)))
	buf.Write(s.Super)
	_ = binary.Write(&buf, binary.BigEndian, int32(s.Menu))
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a saved state. Payloads that were not produced by
// MarshalBinary, or by a newer layout version, fail with a ParseError.
func (s *SavedState) UnmarshalBinary(data []byte) error {
	fail := func(format string, args ...any) error {
		return &errors.ParseError{Source: "saved state", DataType: "SavedState", Reason: fmt.Sprintf(format, args...)}
	}
	if len(data) < savedStateHeader {
		return fail("payload is %d bytes, header needs %d", len(data), savedStateHeader)
	}
	if string(data[:len(savedStateMagic)]) != savedStateMagic {
		return fail("unrecognized magic %q", data[:len(savedStateMagic)])
	}
	if v := data[len(savedStateMagic)]; v != savedStateVersion {
		return fail("unsupported layout version %d", v)
	}
	n := binary.BigEndian.Uint32(data[len(savedStateMagic)+1:])
	rest := data[savedStateHeader:]
	if uint64(len(rest)) != uint64(n)+4 {
		return fail("host payload of %d bytes does not fit %d remaining bytes", n, len(rest))
	}
	tag := MenuState(int32(binary.BigEndian.Uint32(rest[n:])))
	if !tag.valid() {
		return fail("unknown menu state tag %d", int32(tag))
	}
	s.Super = append([]byte(nil), rest[:n]...)
	s.Menu = tag
	return nil
}
