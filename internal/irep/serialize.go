package irep

import (
	"bytes"
	"encoding/json"
	"io"
)

// The JSON rendering is consumed by the checker's symtab2gb front end, which
// is strict about shape: "id" is always present, "sub" and "namedSub" only
// when non-empty, symbol keys in a fixed order, and the whole table under a
// single "symbolTable" key.

func appendJSONString(buf *bytes.Buffer, s string) {
	b, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal.
		panic(err)
	}
	buf.Write(b)
}

func (i *Irep) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(`{"id":`)
	appendJSONString(buf, string(i.ID))
	if len(i.Sub) > 0 {
		buf.WriteString(`,"sub":[`)
		for n, s := range i.Sub {
			if n > 0 {
				buf.WriteByte(',')
			}
			s.appendJSON(buf)
		}
		buf.WriteByte(']')
	}
	if len(i.Named) > 0 {
		buf.WriteString(`,"namedSub":{`)
		for n, ns := range i.Named {
			if n > 0 {
				buf.WriteByte(',')
			}
			appendJSONString(buf, string(ns.Key))
			buf.WriteByte(':')
			ns.Value.appendJSON(buf)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
}

func (i *Irep) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	i.appendJSON(&buf)
	return buf.Bytes(), nil
}

func appendBool(buf *bytes.Buffer, key string, value bool) {
	appendJSONString(buf, key)
	if value {
		buf.WriteString(":true")
	} else {
		buf.WriteString(":false")
	}
}

func (s *Symbol) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(`{"type":`)
	s.Typ.appendJSON(buf)
	buf.WriteString(`,"value":`)
	s.Value.appendJSON(buf)
	buf.WriteString(`,"location":`)
	s.Location.appendJSON(buf)
	for _, field := range []struct {
		key   string
		value string
	}{
		{"name", s.Name},
		{"module", s.Module},
		{"baseName", s.BaseName},
		{"prettyName", s.PrettyName},
		{"mode", s.Mode},
	} {
		buf.WriteByte(',')
		appendJSONString(buf, field.key)
		buf.WriteByte(':')
		appendJSONString(buf, field.value)
	}
	for _, flag := range []struct {
		key   string
		value bool
	}{
		{"isType", s.IsType},
		{"isMacro", s.IsMacro},
		{"isExported", s.IsExported},
		{"isInput", s.IsInput},
		{"isOutput", s.IsOutput},
		{"isStateVar", s.IsStateVar},
		{"isProperty", s.IsProperty},
		{"isStaticLifetime", s.IsStaticLifetime},
		{"isThreadLocal", s.IsThreadLocal},
		{"isLvalue", s.IsLvalue},
		{"isFileLocal", s.IsFileLocal},
		{"isExtern", s.IsExtern},
		{"isVolatile", s.IsVolatile},
		{"isParameter", s.IsParameter},
		{"isAuxiliary", s.IsAuxiliary},
		{"isWeak", s.IsWeak},
	} {
		buf.WriteByte(',')
		appendBool(buf, flag.key, flag.value)
	}
	buf.WriteByte('}')
}

func (s *Symbol) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	s.appendJSON(&buf)
	return buf.Bytes(), nil
}

func (t *SymbolTable) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(`{"symbolTable":{`)
	for n := range t.Symbols {
		if n > 0 {
			buf.WriteByte(',')
		}
		appendJSONString(buf, t.Symbols[n].Name)
		buf.WriteByte(':')
		t.Symbols[n].appendJSON(buf)
	}
	buf.WriteString("}}")
}

func (t *SymbolTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	t.appendJSON(&buf)
	return buf.Bytes(), nil
}

// WriteJSON streams the table in its wire form.
func (t *SymbolTable) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	t.appendJSON(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}
