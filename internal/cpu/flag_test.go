package cpu

import (
	"fmt"
	"testing"
)

func TestFlag(t *testing.T) {
	r := &Registers{}
	t.Run("set", func(t *testing.T) {
		for i := FlagZero; i <= FlagCarry; i++ {
			r.setFlag(i)
			if !r.isFlagSet(i) {
				t.Errorf("expected flag %s to be set, got unset", flagNames[i])
			}
		}
		if r.F() != 0xF0 {
			t.Errorf("expected F to be 0xF0, got 0x%02X", r.F())
		}
	})
	t.Run("clear", func(t *testing.T) {
		for i := FlagZero; i <= FlagCarry; i++ {
			r.clearFlag(i)
			if r.isFlagSet(i) {
				t.Errorf("expected flag %s to be unset, got set", flagNames[i])
			}
		}
		if r.F() != 0x00 {
			t.Errorf("expected F to be 0x00, got 0x%02X", r.F())
		}
	})
	t.Run("independent", func(t *testing.T) {
		for i := FlagZero; i <= FlagCarry; i++ {
			r.setFlags(false, false, false, false)
			r.setFlag(i)
			for j := FlagZero; j <= FlagCarry; j++ {
				if j != i && r.isFlagSet(j) {
					t.Errorf("setting %s also set %s", flagNames[i], flagNames[j])
				}
			}
		}
	})
}

func TestFlags_Packed(t *testing.T) {
	for v := 0; v <= 0xFF; v++ {
		var f Flags
		f.SetF(uint8(v))
		if f.F() != uint8(v)&0xF0 {
			t.Errorf("expected F 0x%02X, got 0x%02X", uint8(v)&0xF0, f.F())
		}
	}

	f := Flags{Zero: true, Carry: true}
	if f.F() != 0x90 {
		t.Errorf("expected 0x90, got 0x%02X", f.F())
	}
	if f.String() != "Z--C" {
		t.Errorf("expected Z--C, got %s", f.String())
	}
}

func TestRegisterPairs(t *testing.T) {
	r := &Registers{}
	pairs := map[string]RegisterPair{"BC": r.BC(), "DE": r.DE(), "HL": r.HL()}

	for name, pair := range pairs {
		for v := 0; v <= 0xFFFF; v++ {
			pair.SetUint16(uint16(v))
			if pair.Uint16() != uint16(v) {
				t.Fatalf("%s: expected 0x%04X, got 0x%04X", name, v, pair.Uint16())
			}
			if *pair.High != uint8(v>>8) || *pair.Low != uint8(v) {
				t.Fatalf("%s: expected high byte in first register for 0x%04X", name, v)
			}
		}
	}

	r.BC().SetUint16(0x1234)
	if r.B != 0x12 || r.C != 0x34 {
		t.Errorf("expected B=0x12 C=0x34, got B=0x%02X C=0x%02X", r.B, r.C)
	}

	r.SetAF(0x01B7)
	if r.A != 0x01 || r.AF() != 0x01B0 {
		t.Errorf("expected AF 0x01B0 with low nibble masked, got 0x%04X", r.AF())
	}
	if !r.Zero || r.Subtract || !r.HalfCarry || !r.Carry {
		t.Errorf("unexpected flags %s", r.Flags)
	}
}

func TestRegisters_String(t *testing.T) {
	r := Registers{A: 0x01, PC: 0x0100}
	r.SetF(0xB0)
	want := "A: 01 F: b0 (Z-HC) B: 00 C: 00 D: 00 E: 00 H: 00 L: 00 SP: 0000 PC: 0100 IME: false"

	// the value and the pointer render the same, not just the flags
	if got := fmt.Sprint(r); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := fmt.Sprint(&r); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
