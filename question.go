// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "fmt"

// QType is the 16-bit query type of a question entry (RFC 1035 §3.2.2-3.2.3).
type QType uint16

const (
	// QTypeA is a host address.
	QTypeA QType = 1

	// QTypeNS is an authoritative name server.
	QTypeNS QType = 2

	// QTypeMD is a mail destination (obsolete, use MX).
	QTypeMD QType = 3

	// QTypeMF is a mail forwarder (obsolete, use MX).
	QTypeMF QType = 4

	// QTypeCNAME is the canonical name for an alias.
	QTypeCNAME QType = 5

	// QTypeSOA marks the start of a zone of authority.
	QTypeSOA QType = 6

	// QTypeMB is a mailbox domain name (experimental).
	QTypeMB QType = 7

	// QTypeMG is a mail group member (experimental).
	QTypeMG QType = 8

	// QTypeMR is a mail rename domain name (experimental).
	QTypeMR QType = 9

	// QTypeNULL is a null RR (experimental).
	QTypeNULL QType = 10

	// QTypeWKS is a well known service description.
	QTypeWKS QType = 11

	// QTypePTR is a domain name pointer.
	QTypePTR QType = 12

	// QTypeHINFO is host information.
	QTypeHINFO QType = 13

	// QTypeMINFO is mailbox or mail list information.
	QTypeMINFO QType = 14

	// QTypeMX is a mail exchange.
	QTypeMX QType = 15

	// QTypeTXT is text strings.
	QTypeTXT QType = 16

	// QTypeAXFR requests the transfer of an entire zone.
	QTypeAXFR QType = 252

	// QTypeMAILB requests mailbox-related records (MB, MG, MR).
	QTypeMAILB QType = 253

	// QTypeMAILA requests mail agent RRs (obsolete, see MX).
	QTypeMAILA QType = 254

	// QTypeANY requests all records.
	QTypeANY QType = 255
)

// QTypeFromValue validates a decoded query type. Values outside the
// enumeration fail with [ErrUnknownEnumValue].
func QTypeFromValue(v uint16) (QType, error) {
	switch {
	case v >= 1 && v <= 16, v >= 252 && v <= 255:
		return QType(v), nil
	default:
		return 0, fmt.Errorf("%w: qtype %d", ErrUnknownEnumValue, v)
	}
}

// QClass is the 16-bit query class of a question entry (RFC 1035 §3.2.4-3.2.5).
type QClass uint16

const (
	// QClassIN is the Internet.
	QClassIN QClass = 1

	// QClassCS is the CSNET class (obsolete).
	QClassCS QClass = 2

	// QClassCH is the CHAOS class.
	QClassCH QClass = 3

	// QClassHS is Hesiod.
	QClassHS QClass = 4

	// QClassANY requests any class.
	QClassANY QClass = 255
)

// QClassFromValue validates a decoded query class. Values outside the
// enumeration fail with [ErrUnknownEnumValue].
func QClassFromValue(v uint16) (QClass, error) {
	switch {
	case v >= 1 && v <= 4, v == 255:
		return QClass(v), nil
	default:
		return 0, fmt.Errorf("%w: qclass %d", ErrUnknownEnumValue, v)
	}
}

// Question is a question section entry (RFC 1035 §4.1.2): the queried
// domain name, the record type requested, and the class.
type Question struct {
	// Name is the domain name being queried, as lowercase dotted labels.
	Name string

	// Type is the record type requested.
	Type QType

	// Class is the query class, usually [QClassIN].
	Class QClass
}

// NewQuestion returns a question with type A and class IN.
func NewQuestion() Question {
	return Question{
		Type:  QTypeA,
		Class: QClassIN,
	}
}

// Read decodes the question from the buffer, advancing its cursor past the
// name and the two 16-bit fields. Unrecognized type or class values are
// fatal for the whole message.
func (q *Question) Read(b *PacketBuffer) error {
	name, err := b.ReadName()
	if err != nil {
		return err
	}
	q.Name = name

	rawType, err := b.ReadUint16()
	if err != nil {
		return err
	}
	if q.Type, err = QTypeFromValue(rawType); err != nil {
		return err
	}

	rawClass, err := b.ReadUint16()
	if err != nil {
		return err
	}
	if q.Class, err = QClassFromValue(rawClass); err != nil {
		return err
	}
	return nil
}

// Write encodes the question into the buffer.
func (q *Question) Write(b *PacketBuffer) error {
	if err := b.WriteName(q.Name); err != nil {
		return err
	}
	if err := b.WriteUint16(uint16(q.Type)); err != nil {
		return err
	}
	return b.WriteUint16(uint16(q.Class))
}
