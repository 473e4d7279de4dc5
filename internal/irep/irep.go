// Package irep renders the typed program representation into the untyped
// tree exchange format the downstream checker consumes, and serializes that
// tree as JSON.
package irep

import "math/big"

// NamedSub is one keyed child of an Irep. Keys stay in insertion order so
// serialization is byte-for-byte deterministic.
type NamedSub struct {
	Key   ID
	Value *Irep
}

// Irep is one node of the exchange tree: an id, positional children and
// keyed children. Everything the checker reads is spelled in this shape.
type Irep struct {
	ID    ID
	Sub   []*Irep
	Named []NamedSub
}

// JustID is a leaf node.
func JustID(id ID) *Irep {
	return &Irep{ID: id}
}

// JustSub is an unnamed node over positional children.
func JustSub(sub []*Irep) *Irep {
	return &Irep{ID: IDEmptyString, Sub: sub}
}

// JustNamedSub is an unnamed node over keyed children.
func JustNamedSub(named []NamedSub) *Irep {
	return &Irep{ID: IDEmptyString, Named: named}
}

// JustStringID wraps an arbitrary string as a leaf.
func JustStringID(s string) *Irep {
	return JustID(FromString(s))
}

// JustIntID is a decimal integer leaf.
func JustIntID(i *big.Int) *Irep {
	return JustID(FromInt(i))
}

// JustUintID is JustIntID for machine integers.
func JustUintID(i uint64) *Irep {
	return JustID(FromUint(i))
}

// JustBitPatternID is a two's complement hex leaf, the form the checker
// expects integer constant values in.
func JustBitPatternID(i *big.Int, width uint64, signed bool) *Irep {
	return JustID(FromBitPattern(i, width, signed))
}

func Nil() *Irep  { return JustID(IDNil) }
func One() *Irep  { return JustID(ID1) }
func Zero() *Irep { return JustID(ID0) }

func (i *Irep) IsNil() bool { return i.ID == IDNil }

// Lookup returns the keyed child under key, if any.
func (i *Irep) Lookup(key ID) (*Irep, bool) {
	for _, ns := range i.Named {
		if ns.Key == key {
			return ns.Value, true
		}
	}
	return nil, false
}

// WithNamedSub appends one keyed child and returns the receiver for
// chaining. A nil value is skipped, so optional annotations can be attached
// unconditionally.
func (i *Irep) WithNamedSub(key ID, value *Irep) *Irep {
	if value == nil {
		return i
	}
	i.Named = append(i.Named, NamedSub{Key: key, Value: value})
	return i
}

// WithComment attaches a `#comment` annotation.
func (i *Irep) WithComment(comment *Irep) *Irep {
	return i.WithNamedSub(IDComment, comment)
}

// WithType attaches the node's type.
func (i *Irep) WithType(typ *Irep) *Irep {
	return i.WithNamedSub(IDType, typ)
}

// WithLocation attaches a source location unless it lowers to nil.
func (i *Irep) WithLocation(loc *Irep) *Irep {
	if loc.IsNil() {
		return i
	}
	return i.WithNamedSub(IDCSourceLocation, loc)
}

// Equal is deep structural equality including keyed-child order.
func (i *Irep) Equal(o *Irep) bool {
	if i.ID != o.ID || len(i.Sub) != len(o.Sub) || len(i.Named) != len(o.Named) {
		return false
	}
	for n, s := range i.Sub {
		if !s.Equal(o.Sub[n]) {
			return false
		}
	}
	for n, ns := range i.Named {
		if ns.Key != o.Named[n].Key || !ns.Value.Equal(o.Named[n].Value) {
			return false
		}
	}
	return true
}
