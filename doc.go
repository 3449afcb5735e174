// SPDX-License-Identifier: GPL-3.0-or-later

// Package dnswire decodes and encodes DNS messages in RFC 1035 wire format.
//
// The codec operates on a fixed-size 512-byte [PacketBuffer], the maximum
// size of a classic UDP datagram carrying DNS. [Decode] turns raw bytes
// received from a socket into a [*Message]; [*Message.Encode] produces the
// bytes to send back. The buffer exposes bounded primitive reads and writes
// plus a domain-name codec that understands RFC 1035 §4.1.4 compression
// pointers on read.
//
// [NewQuery] and [*Query] allow constructing a query message from a possibly
// internationalized domain name. [ParseReply] and [*Reply] validate a raw
// response against the query that produced it.
//
// This package implements the parser/serializer itself and does not depend
// on [github.com/miekg/dns] for it; transports, retries, and truncation
// policy belong to the caller.
package dnswire
