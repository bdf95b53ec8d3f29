package mmu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/types"
)

func newTestMMU(t *testing.T) (*MMU, []byte, []byte) {
	t.Helper()

	bootImage := make([]byte, 0x100)
	for i := range bootImage {
		bootImage[i] = byte(0xFF - i)
	}
	cartImage := make([]byte, 0x8000)
	for i := range cartImage {
		cartImage[i] = byte(i)
	}

	m := NewMMU(nil)
	require.NoError(t, m.LoadImage(RegionBoot, bootImage))
	require.NoError(t, m.LoadImage(RegionCartridge, cartImage))
	return m, bootImage, cartImage
}

func TestMMU_RAMRoundTrip(t *testing.T) {
	m, _, _ := newTestMMU(t)

	ranges := []struct {
		name       string
		start, end uint16
		region     Region
	}{
		{"VRAM", 0x8000, 0x9FFF, RegionVRAM},
		{"WRAM0", 0xC000, 0xCFFF, RegionWRAM0},
		{"WRAM1", 0xD000, 0xDFFF, RegionWRAM1},
		{"IO", 0xFF00, 0xFF4F, RegionIO},
		{"IO high", 0xFF51, 0xFF7F, RegionIO},
		{"HRAM", 0xFF80, 0xFFFE, RegionHRAM},
		{"IE", 0xFFFF, 0xFFFF, RegionIE},
		{"external", 0xA000, 0xBFFF, RegionScratch},
		{"echo", 0xE000, 0xFEFF, RegionScratch},
	}

	for _, r := range ranges {
		t.Run(r.name, func(t *testing.T) {
			for addr := int(r.start); addr <= int(r.end); addr++ {
				a := uint16(addr)
				assert.Equal(t, uint8(0), m.Read(a), "expected zero initialised memory at 0x%04X", a)
				v := uint8(addr*7 + 3)
				require.NoError(t, m.Write(a, v))
				require.Equal(t, v, m.Read(a), "read back at 0x%04X", a)
				require.Equal(t, r.region, m.Region(a))
			}
		})
	}

	assert.Equal(t, uint8(0xFF&(0xFFFF*7+3)), m.InterruptEnable())
}

func TestMMU_WRAMBanksDistinct(t *testing.T) {
	m := NewMMU(nil)
	require.NoError(t, m.Write(0xC123, 0x11))
	require.NoError(t, m.Write(0xD123, 0x22))
	assert.Equal(t, uint8(0x11), m.Read(0xC123))
	assert.Equal(t, uint8(0x22), m.Read(0xD123))
	// echo RAM is not mirrored
	assert.Equal(t, uint8(0x00), m.Read(0xE123))
}

func TestMMU_ReadOnly(t *testing.T) {
	m, bootImage, cartImage := newTestMMU(t)

	for _, addr := range []uint16{0x0000, 0x0010, 0x00FF, 0x0100, 0x3FFF, 0x4000, 0x7FFF} {
		before := m.Read(addr)
		err := m.Write(addr, before+1)

		var roErr *ReadOnlyError
		require.True(t, errors.As(err, &roErr), "expected ReadOnlyError at 0x%04X, got %v", addr, err)
		assert.True(t, errors.Is(err, ErrReadOnly))
		assert.Equal(t, addr, roErr.Address)
		assert.Equal(t, before+1, roErr.Value)
		assert.True(t, roErr.Region.ReadOnly())
		assert.Equal(t, before, m.Read(addr), "write changed ROM at 0x%04X", addr)
	}

	assert.Equal(t, bootImage[0x10], m.Read(0x0010))
	assert.Equal(t, cartImage[0x0150], m.Read(0x0150))
}

func TestMMU_BootOverlay(t *testing.T) {
	m, bootImage, cartImage := newTestMMU(t)

	assert.True(t, m.BootEnabled())
	assert.Equal(t, RegionBoot, m.Region(0x0010))
	assert.Equal(t, bootImage[0x10], m.Read(0x0010))
	assert.Equal(t, uint8(1), m.Read(types.BDIS))
	// the overlay only covers the first 256 bytes
	assert.Equal(t, cartImage[0x0100], m.Read(0x0100))

	// any value disables the overlay, including 0
	require.NoError(t, m.Write(types.BDIS, 0x00))
	assert.False(t, m.BootEnabled())
	assert.Equal(t, RegionCartridge, m.Region(0x0010))
	assert.Equal(t, cartImage[0x10], m.Read(0x0010))
	assert.Equal(t, uint8(0), m.Read(types.BDIS))

	// and it can not be re-enabled
	require.NoError(t, m.Write(types.BDIS, 0x01))
	assert.False(t, m.BootEnabled())
	assert.Equal(t, cartImage[0x10], m.Read(0x0010))

	var roErr *ReadOnlyError
	require.ErrorAs(t, m.Write(0x0010, 0x00), &roErr)
	assert.Equal(t, RegionCartridge, roErr.Region)
}

func TestMMU_WithoutBootOverlay(t *testing.T) {
	m := NewMMU(nil)
	require.NoError(t, m.LoadImage(RegionCartridge, []byte{0xAA, 0xBB}))

	assert.False(t, m.BootEnabled())
	assert.Equal(t, uint8(0xAA), m.Read(0x0000))
	assert.Equal(t, uint8(0xFF), m.Read(0x0002), "reads past the image are open bus")
	assert.Equal(t, uint8(0), m.Read(types.BDIS))
}

func TestMMU_LoadImageErrors(t *testing.T) {
	m := NewMMU(nil)

	var imgErr *ImageError
	require.ErrorAs(t, m.LoadImage(RegionBoot, make([]byte, 0x80)), &imgErr)
	assert.Equal(t, RegionBoot, imgErr.Region)
	assert.False(t, m.BootEnabled())

	require.ErrorAs(t, m.LoadImage(RegionVRAM, []byte{0x00}), &imgErr)
	assert.Equal(t, RegionVRAM, imgErr.Region)
}

func TestMMU_TotalRouting(t *testing.T) {
	m, _, _ := newTestMMU(t)
	for addr := 0; addr <= 0xFFFF; addr++ {
		assert.NotPanics(t, func() { m.Read(uint16(addr)) })
		assert.NotEqual(t, "unknown", m.Region(uint16(addr)).String())
	}
}

func TestMMU_SaveLoad(t *testing.T) {
	m, bootImage, cartImage := newTestMMU(t)
	require.NoError(t, m.Write(0x8010, 0x42))
	require.NoError(t, m.Write(0xD000, 0x43))
	require.NoError(t, m.Write(0xFF80, 0x44))
	require.NoError(t, m.Write(0xFFFF, 0x1F))
	require.NoError(t, m.Write(types.BDIS, 0x01))

	s := types.NewState()
	m.Save(s)

	restored := NewMMU(nil)
	require.NoError(t, restored.LoadImage(RegionBoot, bootImage))
	require.NoError(t, restored.LoadImage(RegionCartridge, cartImage))
	restored.Load(types.StateFromBytes(s.Bytes()))

	assert.Equal(t, uint8(0x42), restored.Read(0x8010))
	assert.Equal(t, uint8(0x43), restored.Read(0xD000))
	assert.Equal(t, uint8(0x44), restored.Read(0xFF80))
	assert.Equal(t, uint8(0x1F), restored.InterruptEnable())
	assert.False(t, restored.BootEnabled())
}

type patchFunc func(uint16, uint8) uint8

func (f patchFunc) Patch(address uint16, value uint8) uint8 { return f(address, value) }

func TestMMU_Patcher(t *testing.T) {
	m, bootImage, cartImage := newTestMMU(t)
	m.SetPatcher(patchFunc(func(address uint16, value uint8) uint8 {
		return value + 1
	}))

	// the overlay is not patched
	assert.Equal(t, bootImage[0x10], m.Read(0x0010))
	assert.Equal(t, cartImage[0x0100]+1, m.Read(0x0100))
	assert.Equal(t, cartImage[0x4000]+1, m.Read(0x4000))

	// neither is RAM
	require.NoError(t, m.Write(0xC000, 0x42))
	assert.Equal(t, uint8(0x42), m.Read(0xC000))

	require.NoError(t, m.Write(types.BDIS, 0x01))
	assert.Equal(t, cartImage[0x10]+1, m.Read(0x0010))

	m.SetPatcher(nil)
	assert.Equal(t, cartImage[0x10], m.Read(0x0010))
}
