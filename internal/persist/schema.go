package persist

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/maze-chase/internal/core"
)

// Field is one entry of the record layout.
type Field struct {
	Name   string
	Offset int
	Size   int

	encode func(b []byte, st *State) error
	decode func(b []byte, st *State) error
}

// Schema is an ordered record layout.
type Schema []Field

// Size returns the number of bytes the record spans.
func (s Schema) Size() int {
	end := 0
	for _, f := range s {
		end = max(end, f.Offset+f.Size)
	}
	return end
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks that fields are sorted by offset and do not overlap.
func (s Schema) Validate() error {
	if !sort.SliceIsSorted(s, func(i, j int) bool { return s[i].Offset < s[j].Offset }) {
		return fmt.Errorf("persist: schema fields not sorted by offset")
	}
	for i, f := range s {
		if f.Size <= 0 {
			return fmt.Errorf("persist: field %s has size %d", f.Name, f.Size)
		}
		if i > 0 && s[i-1].Offset+s[i-1].Size > f.Offset {
			return fmt.Errorf("persist: field %s overlaps %s", f.Name, s[i-1].Name)
		}
	}
	return nil
}

// SignatureField names the field holding the signature.
const SignatureField = "signature"

// SignatureSize is the length of the signature.
const SignatureSize = 8

// Layout is the record format. Bytes 172..179 outside the level field are reserved.
var Layout = Schema{
	{Name: SignatureField, Offset: 0, Size: SignatureSize},
	uintField("score", 8, 4, func(st *State) *int { return &st.Score }),
	uintField("high_score", 12, 4, func(st *State) *int { return &st.HighScore }),
	uintField("remaining", 16, 2, func(st *State) *int { return &st.Remaining }),
	{
		Name: "rows", Offset: 18, Size: MazeRows * 4,
		encode: func(b []byte, st *State) error {
			if len(st.Rows) != MazeRows {
				return fmt.Errorf("rows: %d words, expected %d", len(st.Rows), MazeRows)
			}
			for i, r := range st.Rows {
				binary.LittleEndian.PutUint32(b[i*4:], r)
			}
			return nil
		},
		decode: func(b []byte, st *State) error {
			st.Rows = make([]uint32, MazeRows)
			for i := range st.Rows {
				st.Rows[i] = binary.LittleEndian.Uint32(b[i*4:])
			}
			return nil
		},
	},
	{
		Name: "power_status", Offset: 142, Size: 1,
		encode: func(b []byte, st *State) error {
			b[0] = boolByte(st.PowerActive)
			return nil
		},
		decode: func(b []byte, st *State) error {
			// Anything but 1 means power mode was off
			st.PowerActive = b[0] == 1
			return nil
		},
	},
	durationField("power_since", 143, func(st *State) *time.Duration { return &st.PowerSince }),
	{
		Name: "consumed", Offset: 147, Size: NumGhosts,
		encode: func(b []byte, st *State) error {
			for i, c := range st.Consumed {
				b[i] = boolByte(c)
			}
			return nil
		},
		decode: func(b []byte, st *State) error {
			for i := range st.Consumed {
				if b[i] > 1 {
					return fmt.Errorf("consumed[%d]: flag %d", i, b[i])
				}
				st.Consumed[i] = b[i] == 1
			}
			return nil
		},
	},
	uintField("alive", 151, 1, func(st *State) *int { return &st.Alive }),
	durationField("elapsed", 152, func(st *State) *time.Duration { return &st.Elapsed }),
	uintField("lives", 156, 1, func(st *State) *int { return &st.Lives }),
	uintField("player_x", 157, 1, func(st *State) *int { return &st.Player.X }),
	uintField("player_y", 158, 1, func(st *State) *int { return &st.Player.Y }),
	directionField("player_dir", 159, func(st *State) *core.Direction { return &st.Player.Facing }),
	ghostField("ghost_x", 160, func(e *Entity) *int { return &e.X }),
	ghostField("ghost_y", 164, func(e *Entity) *int { return &e.Y }),
	{
		Name: "ghost_dir", Offset: 168, Size: NumGhosts,
		encode: func(b []byte, st *State) error {
			for i, g := range st.Ghosts {
				b[i] = byte(g.Facing)
			}
			return nil
		},
		decode: func(b []byte, st *State) error {
			for i := range st.Ghosts {
				d := core.Direction(b[i])
				if !d.Valid() {
					return fmt.Errorf("ghost_dir[%d]: %d", i, b[i])
				}
				st.Ghosts[i].Facing = d
			}
			return nil
		},
	},
	uintField("level", 172, 2, func(st *State) *int { return &st.Level }),
	uintField("last_bonus", 180, 2, func(st *State) *int { return &st.LastBonus }),
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// uintField stores a non-negative int in size little-endian bytes.
func uintField(name string, offset, size int, ptr func(*State) *int) Field {
	limit := uint64(1)<<(8*size) - 1
	return Field{
		Name: name, Offset: offset, Size: size,
		encode: func(b []byte, st *State) error {
			v := *ptr(st)
			if v < 0 || uint64(v) > limit {
				return fmt.Errorf("%s: %d does not fit %d bytes", name, v, size)
			}
			putUint(b, uint64(v))
			return nil
		},
		decode: func(b []byte, st *State) error {
			*ptr(st) = int(getUint(b))
			return nil
		},
	}
}

// durationField stores a duration as uint32 milliseconds.
func durationField(name string, offset int, ptr func(*State) *time.Duration) Field {
	return Field{
		Name: name, Offset: offset, Size: 4,
		encode: func(b []byte, st *State) error {
			ms := ptr(st).Milliseconds()
			if ms < 0 || ms > int64(^uint32(0)) {
				return fmt.Errorf("%s: %dms does not fit 4 bytes", name, ms)
			}
			binary.LittleEndian.PutUint32(b, uint32(ms))
			return nil
		},
		decode: func(b []byte, st *State) error {
			*ptr(st) = time.Duration(binary.LittleEndian.Uint32(b)) * time.Millisecond
			return nil
		},
	}
}

func directionField(name string, offset int, ptr func(*State) *core.Direction) Field {
	return Field{
		Name: name, Offset: offset, Size: 1,
		encode: func(b []byte, st *State) error {
			b[0] = byte(*ptr(st))
			return nil
		},
		decode: func(b []byte, st *State) error {
			d := core.Direction(b[0])
			if !d.Valid() {
				return fmt.Errorf("%s: %d", name, b[0])
			}
			*ptr(st) = d
			return nil
		},
	}
}

// ghostField stores one byte per pursuer.
func ghostField(name string, offset int, ptr func(*Entity) *int) Field {
	return Field{
		Name: name, Offset: offset, Size: NumGhosts,
		encode: func(b []byte, st *State) error {
			for i := range st.Ghosts {
				v := *ptr(&st.Ghosts[i])
				if v < 0 || v > 0xff {
					return fmt.Errorf("%s[%d]: %d does not fit 1 byte", name, i, v)
				}
				b[i] = byte(v)
			}
			return nil
		},
		decode: func(b []byte, st *State) error {
			for i := range st.Ghosts {
				*ptr(&st.Ghosts[i]) = int(b[i])
			}
			return nil
		},
	}
}

func putUint(b []byte, v uint64) {
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
}

func getUint(b []byte) uint64 {
	var v uint64
	for i := range b {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
