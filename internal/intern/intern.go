// Package intern provides append-only string interning for IR identifiers.
//
// Interners are not safe for concurrent use. Each worker owns its own
// Interner; strings cross workers only through Portable handles.
package intern

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// StringID is a handle into one Interner. IDs from different interners are
// not interchangeable.
type StringID uint32

// NoString is the zero handle. Every interner maps it to the empty string.
const NoString StringID = 0

type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts s and returns its ID. Interning the same string twice
// returns the same ID.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Copy so the interner never aliases a caller-owned buffer.
	cpy := string([]byte(s))
	raw, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("len(byID) overflow: %w", err))
	}
	id := StringID(raw)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes inserts the string form of b and returns its ID.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or ("", false) if id is not valid here.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on an invalid ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("intern: invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len reports the number of interned strings, including NoString.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings, indexed by StringID.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}

// Portable is a string detached from any interner. It is the only way to
// move an interned string between workers: export on the producing side,
// adopt on the consuming side.
type Portable struct {
	s string
}

// Export detaches id into a Portable that may be sent to another goroutine.
func (i *Interner) Export(id StringID) Portable {
	return Portable{s: i.MustLookup(id)}
}

// Adopt interns a Portable into this interner and returns the local ID.
func (i *Interner) Adopt(p Portable) StringID {
	return i.Intern(p.s)
}

// String returns the detached string value.
func (p Portable) String() string {
	return p.s
}
