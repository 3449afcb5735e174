// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"fmt"
	"net/netip"
)

// Record is a resource record in the answer section (RFC 1035 §4.1.3).
//
// Each supported wire type has its own variant ([*ARecord], [*CNAMERecord]);
// everything else decodes into [*UnknownRecord]. Supporting a new type means
// adding a variant and its arms in [ParseRecord] and Write.
type Record interface {
	// Type returns the record's 16-bit wire type code.
	Type() uint16

	// Write encodes the record at the buffer cursor and returns the
	// number of bytes written.
	Write(b *PacketBuffer) (int, error)
}

// ARecord is an IPv4 host address record (RFC 1035 §3.4.1).
type ARecord struct {
	// Domain is the owner name.
	Domain string

	// Addr is the IPv4 address.
	Addr netip.Addr

	// TTL is the caching lifetime in seconds.
	TTL uint32
}

// Type implements [Record].
func (r *ARecord) Type() uint16 { return uint16(QTypeA) }

// Write encodes the record: name, type, class IN, TTL, an RDLENGTH of 4,
// and the four address octets.
func (r *ARecord) Write(b *PacketBuffer) (int, error) {
	if !r.Addr.Is4() {
		return 0, fmt.Errorf("%w: A record address %s is not IPv4", ErrUnsupportedRecord, r.Addr)
	}
	start := b.Pos()

	if err := b.WriteName(r.Domain); err != nil {
		return 0, err
	}
	if err := b.WriteUint16(uint16(QTypeA)); err != nil {
		return 0, err
	}
	if err := b.WriteUint16(uint16(QClassIN)); err != nil {
		return 0, err
	}
	if err := b.WriteUint32(r.TTL); err != nil {
		return 0, err
	}
	if err := b.WriteUint16(4); err != nil {
		return 0, err
	}
	octets := r.Addr.As4()
	for _, octet := range octets {
		if err := b.WriteUint8(octet); err != nil {
			return 0, err
		}
	}
	return b.Pos() - start, nil
}

// CNAMERecord is a canonical-name alias record (RFC 1035 §3.3.1).
type CNAMERecord struct {
	// Domain is the owner name.
	Domain string

	// Target is the canonical name the owner aliases.
	Target string

	// TTL is the caching lifetime in seconds.
	TTL uint32
}

// Type implements [Record].
func (r *CNAMERecord) Type() uint16 { return uint16(QTypeCNAME) }

// Write encodes the record with the target as uncompressed labels.
func (r *CNAMERecord) Write(b *PacketBuffer) (int, error) {
	start := b.Pos()

	if err := b.WriteName(r.Domain); err != nil {
		return 0, err
	}
	if err := b.WriteUint16(uint16(QTypeCNAME)); err != nil {
		return 0, err
	}
	if err := b.WriteUint16(uint16(QClassIN)); err != nil {
		return 0, err
	}
	if err := b.WriteUint32(r.TTL); err != nil {
		return 0, err
	}
	// Uncompressed labels take one length byte per label plus the
	// terminating zero, i.e. len(target)+2 bytes.
	if err := b.WriteUint16(uint16(len(r.Target) + 2)); err != nil {
		return 0, err
	}
	if err := b.WriteName(r.Target); err != nil {
		return 0, err
	}
	return b.Pos() - start, nil
}

// UnknownRecord is any record whose type has no first-class variant. The
// payload itself is not retained, only its declared length, so the variant
// cannot be encoded back to the wire.
type UnknownRecord struct {
	// Domain is the owner name.
	Domain string

	// RawType is the 16-bit wire type code.
	RawType uint16

	// DataLen is the declared RDLENGTH.
	DataLen uint16

	// TTL is the caching lifetime in seconds.
	TTL uint32
}

// Type implements [Record].
func (r *UnknownRecord) Type() uint16 { return r.RawType }

// Write fails with [ErrUnsupportedRecord]: the payload was skipped during
// decoding and there is nothing faithful to emit.
func (r *UnknownRecord) Write(b *PacketBuffer) (int, error) {
	return 0, fmt.Errorf("%w: type %d", ErrUnsupportedRecord, r.RawType)
}

// ParseRecord decodes one resource record at the buffer cursor.
//
// The class field is read and discarded: this codec assumes IN. Types
// without a variant skip exactly their declared RDLENGTH so that the
// records that follow remain decodable.
func ParseRecord(b *PacketBuffer) (Record, error) {
	domain, err := b.ReadName()
	if err != nil {
		return nil, err
	}
	rawType, err := b.ReadUint16()
	if err != nil {
		return nil, err
	}
	if _, err := b.ReadUint16(); err != nil { // class, assumed IN
		return nil, err
	}
	ttl, err := b.ReadUint32()
	if err != nil {
		return nil, err
	}
	dataLen, err := b.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch rawType {
	case uint16(QTypeA):
		raw, err := b.ReadUint32()
		if err != nil {
			return nil, err
		}
		addr := netip.AddrFrom4([4]byte{
			uint8(raw >> 24),
			uint8(raw >> 16),
			uint8(raw >> 8),
			uint8(raw),
		})
		return &ARecord{Domain: domain, Addr: addr, TTL: ttl}, nil

	case uint16(QTypeCNAME):
		start := b.Pos()
		target, err := b.ReadName()
		if err != nil {
			return nil, err
		}
		// The target may end in a compression pointer; pin the cursor
		// to the declared rdata end so the stream stays in sync.
		b.Seek(start + int(dataLen))
		return &CNAMERecord{Domain: domain, Target: target, TTL: ttl}, nil

	default:
		b.Step(int(dataLen))
		return &UnknownRecord{Domain: domain, RawType: rawType, DataLen: dataLen, TTL: ttl}, nil
	}
}
