// Package fixtures builds media files that no encoder in the module can write.
package fixtures

import (
	"encoding/binary"
	"image/color"
)

type bitWriter struct {
	buf   []byte
	acc   uint64
	nBits uint
}

// write appends the low n bits of v, least significant bit first.
func (b *bitWriter) write(v uint32, n uint) {
	b.acc |= uint64(v) << b.nBits
	b.nBits += n
	for b.nBits >= 8 {
		b.buf = append(b.buf, byte(b.acc))
		b.acc >>= 8
		b.nBits -= 8
	}
}

func (b *bitWriter) bytes() []byte {
	if b.nBits > 0 {
		b.buf = append(b.buf, byte(b.acc))
		b.acc, b.nBits = 0, 0
	}
	return b.buf
}

// SolidWebP returns a lossless (VP8L) webp of w×h pixels filled with c.
// Every prefix code holds a single symbol, so pixels take zero bits.
func SolidWebP(w, h int, c color.NRGBA) []byte {
	bw := &bitWriter{}
	bw.write(0x2f, 8)
	bw.write(uint32(w-1), 14)
	bw.write(uint32(h-1), 14)
	alphaUsed := uint32(0)
	if c.A != 0xff {
		alphaUsed = 1
	}
	bw.write(alphaUsed, 1)
	bw.write(0, 3) // version
	bw.write(0, 1) // без трансформаций
	bw.write(0, 1) // без color cache
	bw.write(0, 1) // без meta prefix codes

	// green, red, blue, alpha, distance
	for _, sym := range []uint8{c.G, c.R, c.B, c.A, 0} {
		bw.write(1, 1) // simple code
		bw.write(0, 1) // один символ
		bw.write(1, 1) // 8-битный символ
		bw.write(uint32(sym), 8)
	}

	data := bw.bytes()
	if len(data)%2 == 1 {
		data = append(data, 0)
	}

	out := make([]byte, 0, 20+len(data))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(4+8+len(data)))
	out = append(out, "WEBPVP8L"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	return append(out, data...)
}
