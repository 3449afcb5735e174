// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "fmt"

// Opcode is the four-bit message kind carried in the header flags
// (RFC 1035 §4.1.1). Values 3-15 are reserved.
type Opcode uint8

const (
	// OpcodeQuery is a standard query.
	OpcodeQuery Opcode = 0

	// OpcodeIQuery is an inverse query (obsolete in practice).
	OpcodeIQuery Opcode = 1

	// OpcodeStatus is a server status request.
	OpcodeStatus Opcode = 2
)

// OpcodeFromValue validates a decoded opcode value. Reserved values fail
// with [ErrUnknownEnumValue].
func OpcodeFromValue(v uint8) (Opcode, error) {
	switch v {
	case 0, 1, 2:
		return Opcode(v), nil
	default:
		return 0, fmt.Errorf("%w: opcode %d", ErrUnknownEnumValue, v)
	}
}

// RCode is the four-bit response code carried in the header flags
// (RFC 1035 §4.1.1). Values 6-15 are reserved.
type RCode uint8

const (
	// RCodeNoError means no error condition.
	RCodeNoError RCode = 0

	// RCodeFormatError means the server could not interpret the query.
	RCodeFormatError RCode = 1

	// RCodeServerFailure means an internal server problem.
	RCodeServerFailure RCode = 2

	// RCodeNameError means the queried domain name does not exist. Only
	// meaningful in responses from an authoritative server.
	RCodeNameError RCode = 3

	// RCodeNotImplemented means the server does not support the query kind.
	RCodeNotImplemented RCode = 4

	// RCodeRefused means the server refused for policy reasons.
	RCodeRefused RCode = 5
)

// RCodeFromValue validates a decoded response code value. Reserved values
// fail with [ErrUnknownEnumValue].
func RCodeFromValue(v uint8) (RCode, error) {
	switch v {
	case 0, 1, 2, 3, 4, 5:
		return RCode(v), nil
	default:
		return 0, fmt.Errorf("%w: rcode %d", ErrUnknownEnumValue, v)
	}
}

// Header is the 12-byte DNS message header (RFC 1035 §4.1.1): the
// transaction ID, the packed flags, and the four section counts.
type Header struct {
	// ID is the 16-bit transaction identifier, copied into the reply so
	// the requester can match responses to outstanding queries.
	ID uint16

	// Reply distinguishes responses (true) from queries (false).
	Reply bool

	// Opcode is the message kind, set by the query originator.
	Opcode Opcode

	// Authoritative marks a response from an authoritative server.
	Authoritative bool

	// Truncated marks a message cut short by the transport limit.
	Truncated bool

	// RecursionDesired asks the server to pursue the query recursively.
	RecursionDesired bool

	// RecursionAvailable advertises recursive support in a response.
	RecursionAvailable bool

	// RCode is the response status.
	RCode RCode

	// QuestionCount is the number of question entries.
	QuestionCount uint16

	// AnswerCount is the number of answer records.
	AnswerCount uint16

	// AuthorityCount is the number of authority records.
	AuthorityCount uint16

	// AdditionalCount is the number of additional records.
	AdditionalCount uint16
}

// NewHeader returns a header with the defaults of an empty reply:
// ID 1234, the reply flag set, everything else zero.
func NewHeader() Header {
	return Header{
		ID:    1234,
		Reply: true,
	}
}

// Read decodes the header from the buffer, advancing its cursor by twelve
// bytes on success.
func (h *Header) Read(b *PacketBuffer) error {
	id, err := b.ReadUint16()
	if err != nil {
		return err
	}
	h.ID = id

	flags, err := b.ReadUint16()
	if err != nil {
		return err
	}
	hi := uint8(flags >> 8)
	lo := uint8(flags)

	h.RecursionDesired = hi&(1<<0) != 0
	h.Truncated = hi&(1<<1) != 0
	h.Authoritative = hi&(1<<2) != 0
	opcode, err := OpcodeFromValue((hi >> 3) & 0x0F)
	if err != nil {
		return err
	}
	h.Opcode = opcode
	h.Reply = hi&(1<<7) != 0

	rcode, err := RCodeFromValue(lo & 0x0F)
	if err != nil {
		return err
	}
	h.RCode = rcode
	h.RecursionAvailable = lo&(1<<7) != 0

	if h.QuestionCount, err = b.ReadUint16(); err != nil {
		return err
	}
	if h.AnswerCount, err = b.ReadUint16(); err != nil {
		return err
	}
	if h.AuthorityCount, err = b.ReadUint16(); err != nil {
		return err
	}
	if h.AdditionalCount, err = b.ReadUint16(); err != nil {
		return err
	}
	return nil
}

// Write encodes the header into the buffer, the bit-for-bit inverse of
// [*Header.Read].
func (h *Header) Write(b *PacketBuffer) error {
	if err := b.WriteUint16(h.ID); err != nil {
		return err
	}

	hi := uint8(h.Opcode) << 3
	if h.RecursionDesired {
		hi |= 1 << 0
	}
	if h.Truncated {
		hi |= 1 << 1
	}
	if h.Authoritative {
		hi |= 1 << 2
	}
	if h.Reply {
		hi |= 1 << 7
	}
	if err := b.WriteUint8(hi); err != nil {
		return err
	}

	lo := uint8(h.RCode)
	if h.RecursionAvailable {
		lo |= 1 << 7
	}
	if err := b.WriteUint8(lo); err != nil {
		return err
	}

	if err := b.WriteUint16(h.QuestionCount); err != nil {
		return err
	}
	if err := b.WriteUint16(h.AnswerCount); err != nil {
		return err
	}
	if err := b.WriteUint16(h.AuthorityCount); err != nil {
		return err
	}
	return b.WriteUint16(h.AdditionalCount)
}
