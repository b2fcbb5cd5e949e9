package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToUint16(t *testing.T) {
	for h := 0; h < 256; h += 17 {
		for l := 0; l < 256; l += 13 {
			v := BytesToUint16(uint8(h), uint8(l))
			assert.Equal(t, uint16(h)<<8|uint16(l), v)

			gotH, gotL := Uint16ToBytes(v)
			assert.Equal(t, uint8(h), gotH)
			assert.Equal(t, uint8(l), gotL)
		}
	}
}

func TestBits(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		assert.Equal(t, uint8(1)<<b, SetBit(0x00, b))
		assert.Equal(t, ^(uint8(1) << b), ClearBit(0xFF, b))
		assert.True(t, TestBit(SetBit(0x00, b), b))
		assert.False(t, TestBit(ClearBit(0xFF, b), b))
	}
	assert.Equal(t, uint8(0x81), SetBit(0x81, 7))
	assert.Equal(t, uint8(0x01), ClearBit(0x01, 7))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(1, -5, 10))
	assert.Equal(t, 10, Clamp(1, 50, 10))
	assert.Equal(t, 5, Clamp(1, 5, 10))
	assert.Equal(t, uint16(0xFFFF), Clamp[uint16](0, 0xFFFF, 0xFFFF))
}

func TestDigest(t *testing.T) {
	a := make([]byte, 0x10000)
	b := make([]byte, 0x10000)
	assert.Equal(t, Digest(a), Digest(b))

	b[0xFF80] = 1
	assert.NotEqual(t, Digest(a), Digest(b))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	want := []byte{0x00, 0x3E, 0x42, 0x76}

	t.Run("raw", func(t *testing.T) {
		path := filepath.Join(dir, "dump.bin")
		require.NoError(t, os.WriteFile(path, want, 0o644))

		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(want)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(dir, "dump.bin.gz")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("dump.bin")
		require.NoError(t, err)
		_, err = f.Write(want)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(dir, "dump.zip")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.bin"))
		assert.Error(t, err)
	})
}
