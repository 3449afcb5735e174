// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"fmt"
	"strings"
)

// PacketBufferSize is the fixed capacity of a [PacketBuffer]. It matches the
// maximum DNS message size over classic UDP (RFC 1035 §4.2.1).
const PacketBufferSize = 512

// PacketBuffer is a fixed-size byte buffer with a cursor, used to decode and
// encode exactly one DNS message. It is not safe for concurrent use.
//
// Construct using [NewPacketBuffer] or [PacketBufferFrom].
type PacketBuffer struct {
	buf [PacketBufferSize]byte
	pos int
}

// NewPacketBuffer returns a fresh zero-filled buffer with the cursor at 0.
func NewPacketBuffer() *PacketBuffer {
	return &PacketBuffer{}
}

// PacketBufferFrom returns a buffer preloaded with raw, typically a datagram
// read from a socket. It fails with [ErrBufferOverrun] when raw does not fit.
func PacketBufferFrom(raw []byte) (*PacketBuffer, error) {
	if len(raw) > PacketBufferSize {
		return nil, fmt.Errorf("%w: message is %d bytes", ErrBufferOverrun, len(raw))
	}
	b := &PacketBuffer{}
	copy(b.buf[:], raw)
	return b, nil
}

// Pos returns the current cursor offset.
func (b *PacketBuffer) Pos() int {
	return b.pos
}

// Bytes returns the buffer contents written so far, i.e. everything up to
// the current cursor.
func (b *PacketBuffer) Bytes() []byte {
	return b.buf[:b.pos]
}

// Step moves the cursor forward by steps without touching the contents.
// Bounds are checked by the next access, not here.
func (b *PacketBuffer) Step(steps int) {
	b.pos += steps
}

// Seek moves the cursor to an absolute offset. Bounds are checked by the
// next access, not here.
func (b *PacketBuffer) Seek(pos int) {
	b.pos = pos
}

// ReadUint8 returns the byte at the cursor and advances by one.
func (b *PacketBuffer) ReadUint8() (uint8, error) {
	if b.pos >= PacketBufferSize {
		return 0, ErrBufferOverrun
	}
	v := b.buf[b.pos]
	b.pos++
	return v, nil
}

// Get returns the byte at an absolute offset without moving the cursor.
func (b *PacketBuffer) Get(pos int) (uint8, error) {
	if pos >= PacketBufferSize {
		return 0, ErrBufferOverrun
	}
	return b.buf[pos], nil
}

// GetRange returns a read-only view of n bytes starting at start, without
// moving the cursor. A range whose end offset reaches the capacity is
// rejected, so the final byte of the buffer can never terminate a range;
// this mirrors the bound the rest of the codec was validated against.
func (b *PacketBuffer) GetRange(start, n int) ([]byte, error) {
	if start+n >= PacketBufferSize {
		return nil, ErrBufferOverrun
	}
	return b.buf[start : start+n], nil
}

// ReadUint16 reads a big-endian uint16 at the cursor, advancing by two.
func (b *PacketBuffer) ReadUint16() (uint16, error) {
	hi, err := b.ReadUint8()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadUint8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadUint32 reads a big-endian uint32 at the cursor, advancing by four.
func (b *PacketBuffer) ReadUint32() (uint32, error) {
	hi, err := b.ReadUint16()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadUint16()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// WriteUint8 writes a byte at the cursor and advances by one.
func (b *PacketBuffer) WriteUint8(v uint8) error {
	if b.pos >= PacketBufferSize {
		return ErrBufferOverrun
	}
	b.buf[b.pos] = v
	b.pos++
	return nil
}

// WriteUint16 writes a big-endian uint16 at the cursor, advancing by two.
func (b *PacketBuffer) WriteUint16(v uint16) error {
	if err := b.WriteUint8(uint8(v >> 8)); err != nil {
		return err
	}
	return b.WriteUint8(uint8(v))
}

// WriteUint32 writes a big-endian uint32 at the cursor, advancing by four.
func (b *PacketBuffer) WriteUint32(v uint32) error {
	if err := b.WriteUint16(uint16(v >> 16)); err != nil {
		return err
	}
	return b.WriteUint16(uint16(v))
}

// ReadName decodes a possibly-compressed domain name starting at the cursor
// and returns it as lowercase dot-separated labels without a trailing dot.
//
// Compression pointers (RFC 1035 §4.1.4) are label-length bytes whose two
// high bits are set; the remaining 14 bits give an absolute offset into the
// message where the name continues. Pointers may only be followed a limited
// number of times because packets are untrusted and can contain cycles.
//
// The shared cursor ends up just past the name as it appears at the current
// position: past the terminating zero byte when no pointer occurred, or past
// the two bytes of the first pointer otherwise.
func (b *PacketBuffer) ReadName() (string, error) {
	// Track progress with a local position so that following a pointer
	// does not disturb where the caller resumes reading.
	pos := b.pos

	const maxJumps = 5
	jumped := false
	jumps := 0

	var name strings.Builder
	delim := ""
	for {
		if jumps > maxJumps {
			return "", ErrCompressionLoop
		}

		// Always at the start of a label here: read its length byte.
		length, err := b.Get(pos)
		if err != nil {
			return "", err
		}

		if length&0xC0 == 0xC0 {
			// Pointer. Move the shared cursor past it the first
			// time only; later pointers belong to the jumped-to
			// name, not to this position in the stream.
			if !jumped {
				b.Seek(pos + 2)
			}
			next, err := b.Get(pos + 1)
			if err != nil {
				return "", err
			}
			pos = int(uint16(length^0xC0)<<8 | uint16(next))
			jumped = true
			jumps++
			continue
		}

		pos++
		if length == 0 {
			break
		}

		name.WriteString(delim)
		label, err := b.GetRange(pos, int(length))
		if err != nil {
			return "", err
		}
		name.WriteString(strings.ToLower(string(label)))
		delim = "."
		pos += int(length)
	}

	if !jumped {
		b.Seek(pos)
	}
	return name.String(), nil
}

// WriteName encodes a domain name at the cursor as length-prefixed labels
// terminated by a zero byte. Compression pointers are never emitted: every
// name is written in full.
func (b *PacketBuffer) WriteName(name string) error {
	for _, label := range strings.Split(name, ".") {
		if len(label) > 0x3F {
			return fmt.Errorf("%w: %q", ErrLabelTooLong, label)
		}
		if err := b.WriteUint8(uint8(len(label))); err != nil {
			return err
		}
		for i := 0; i < len(label); i++ {
			if err := b.WriteUint8(label[i]); err != nil {
				return err
			}
		}
	}
	return b.WriteUint8(0)
}
