package ir

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// MachineModel carries the numeric/ABI facts of the verification target.
// All widths are in bits.
type MachineModel struct {
	Architecture      string `toml:"architecture"`
	Alignment         uint64 `toml:"alignment"`
	BoolWidth         uint64 `toml:"bool_width"`
	CharIsUnsigned    bool   `toml:"char_is_unsigned"`
	CharWidth         uint64 `toml:"char_width"`
	DoubleWidth       uint64 `toml:"double_width"`
	FloatWidth        uint64 `toml:"float_width"`
	IntWidth          uint64 `toml:"int_width"`
	IsBigEndian       bool   `toml:"is_big_endian"`
	LongDoubleWidth   uint64 `toml:"long_double_width"`
	LongIntWidth      uint64 `toml:"long_int_width"`
	LongLongIntWidth  uint64 `toml:"long_long_int_width"`
	MemoryOperandSize uint64 `toml:"memory_operand_size"`
	NullIsZero        bool   `toml:"null_is_zero"`
	PointerWidth      uint64 `toml:"pointer_width"`
	ShortIntWidth     uint64 `toml:"short_int_width"`
	SingleWidth       uint64 `toml:"single_width"`
	WcharTIsUnsigned  bool   `toml:"wchar_t_is_unsigned"`
	WcharTWidth       uint64 `toml:"wchar_t_width"`
	WordSize          uint64 `toml:"word_size"`
}

// MachineX8664 is the default 64-bit little-endian target.
func MachineX8664() *MachineModel {
	return &MachineModel{
		Architecture:      "x86_64",
		Alignment:         1,
		BoolWidth:         8,
		CharIsUnsigned:    false,
		CharWidth:         8,
		DoubleWidth:       64,
		FloatWidth:        32,
		IntWidth:          32,
		IsBigEndian:       false,
		LongDoubleWidth:   128,
		LongIntWidth:      64,
		LongLongIntWidth:  64,
		MemoryOperandSize: 4,
		NullIsZero:        true,
		PointerWidth:      64,
		ShortIntWidth:     16,
		SingleWidth:       32,
		WcharTIsUnsigned:  false,
		WcharTWidth:       32,
		WordSize:          32,
	}
}

// MachineAarch64 models 64-bit ARM, where plain char is unsigned.
func MachineAarch64() *MachineModel {
	m := MachineX8664()
	m.Architecture = "aarch64"
	m.CharIsUnsigned = true
	return m
}

// MachinePreset resolves a named built-in target.
func MachinePreset(name string) (*MachineModel, error) {
	switch name {
	case "x86_64", "amd64":
		return MachineX8664(), nil
	case "aarch64", "arm64":
		return MachineAarch64(), nil
	default:
		return nil, fmt.Errorf("unknown machine preset %q", name)
	}
}

type machineFile struct {
	Machine MachineModel `toml:"machine"`
}

// LoadMachineModel reads a `[machine]` table from a TOML file. Widths that
// every lowering depends on must be present; everything else defaults to
// the x86_64 preset.
func LoadMachineModel(path string) (*MachineModel, error) {
	cfg := machineFile{Machine: *MachineX8664()}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("machine") {
		return nil, fmt.Errorf("%s: missing [machine]", path)
	}
	for _, key := range []string{"pointer_width", "char_width", "int_width"} {
		if !meta.IsDefined("machine", key) {
			return nil, fmt.Errorf("%s: missing [machine].%s", path, key)
		}
	}
	if cfg.Machine.PointerWidth == 0 || cfg.Machine.CharWidth == 0 {
		return nil, fmt.Errorf("%s: machine widths must be positive", path)
	}
	return &cfg.Machine, nil
}
