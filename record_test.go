// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARecordWriteParse(t *testing.T) {
	orig := &ARecord{
		Domain: "example.com",
		Addr:   netip.AddrFrom4([4]byte{93, 184, 216, 34}),
		TTL:    3600,
	}

	b := NewPacketBuffer()
	n, err := orig.Write(b)
	require.NoError(t, err)
	// name(13) + type(2) + class(2) + ttl(4) + rdlength(2) + rdata(4)
	assert.Equal(t, 27, n)

	b.Seek(0)
	parsed, err := ParseRecord(b)
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
	assert.Equal(t, 27, b.Pos())
}

func TestARecordWriteNotIPv4(t *testing.T) {
	r := &ARecord{
		Domain: "example.com",
		Addr:   netip.MustParseAddr("2001:db8::1"),
		TTL:    60,
	}
	b := NewPacketBuffer()
	_, err := r.Write(b)
	require.ErrorIs(t, err, ErrUnsupportedRecord)
}

func TestCNAMERecordWriteParse(t *testing.T) {
	orig := &CNAMERecord{
		Domain: "www.example.com",
		Target: "example.com",
		TTL:    120,
	}

	b := NewPacketBuffer()
	_, err := orig.Write(b)
	require.NoError(t, err)

	b.Seek(0)
	parsed, err := ParseRecord(b)
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}

func TestParseRecordUnknownTypeSkipsRData(t *testing.T) {
	// A TXT record (no first-class variant) followed by an A record: the
	// decoder must skip the declared rdata so the A record stays readable.
	b := NewPacketBuffer()
	require.NoError(t, b.WriteName("example.com"))
	require.NoError(t, b.WriteUint16(uint16(QTypeTXT)))
	require.NoError(t, b.WriteUint16(uint16(QClassIN)))
	require.NoError(t, b.WriteUint32(300))
	require.NoError(t, b.WriteUint16(5))
	for _, c := range []byte{4, 'r', 'u', 's', 't'} {
		require.NoError(t, b.WriteUint8(c))
	}
	a := &ARecord{Domain: "example.com", Addr: netip.AddrFrom4([4]byte{8, 8, 8, 8}), TTL: 60}
	_, err := a.Write(b)
	require.NoError(t, err)

	b.Seek(0)
	first, err := ParseRecord(b)
	require.NoError(t, err)
	unknown, ok := first.(*UnknownRecord)
	require.True(t, ok)
	assert.Equal(t, "example.com", unknown.Domain)
	assert.Equal(t, uint16(QTypeTXT), unknown.RawType)
	assert.Equal(t, uint16(5), unknown.DataLen)
	assert.Equal(t, uint32(300), unknown.TTL)

	second, err := ParseRecord(b)
	require.NoError(t, err)
	assert.Equal(t, a, second)
}

func TestUnknownRecordWriteFails(t *testing.T) {
	r := &UnknownRecord{Domain: "example.com", RawType: 16, DataLen: 5, TTL: 300}
	b := NewPacketBuffer()
	n, err := r.Write(b)
	require.ErrorIs(t, err, ErrUnsupportedRecord)
	assert.Zero(t, n)
	assert.Equal(t, 0, b.Pos())
}

func TestRecordType(t *testing.T) {
	assert.Equal(t, uint16(1), (&ARecord{}).Type())
	assert.Equal(t, uint16(5), (&CNAMERecord{}).Type())
	assert.Equal(t, uint16(999), (&UnknownRecord{RawType: 999}).Type())
}
