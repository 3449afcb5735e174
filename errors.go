// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "errors"

// Errors emitted by the wire-level codec.
var (
	// ErrBufferOverrun means a read or write touched the packet buffer at
	// or past its 512-byte capacity.
	ErrBufferOverrun = errors.New("end of buffer")

	// ErrCompressionLoop means domain-name decoding followed more than
	// five compression pointers for a single name. DNS packets are
	// untrusted input and a crafted packet can contain pointer cycles.
	ErrCompressionLoop = errors.New("compression pointer limit exceeded")

	// ErrLabelTooLong means an encode-time domain-name label exceeds the
	// 63-byte limit of RFC 1035 §2.3.4.
	ErrLabelTooLong = errors.New("label exceeds 63 bytes")

	// ErrUnknownEnumValue means a decoded opcode, response code, query
	// type, or query class does not belong to its enumeration.
	ErrUnknownEnumValue = errors.New("unknown enumeration value")

	// ErrUnsupportedRecord means encoding reached a record variant that
	// has no wire representation, i.e. an [*UnknownRecord].
	ErrUnsupportedRecord = errors.New("cannot encode unsupported record")
)
