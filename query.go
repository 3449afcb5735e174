//
// SPDX-License-Identifier: BSD-3-Clause
//

package dnswire

import (
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// Query is a DNS query.
//
// Construct using [NewQuery] or set the MANDATORY fields.
type Query struct {
	// ID is the OPTIONAL query ID.
	ID uint16

	// Name is the MANDATORY domain name to query.
	Name string

	// Type is the query type.
	Type QType
}

// NewQuery constructs a new [*Query] with safe defaults.
//
// By default, the query uses a randomized ID.
func NewQuery(name string, qtype QType) *Query {
	return &Query{
		ID:   dns.Id(),
		Name: name,
		Type: qtype,
	}
}

// Clone returns a deep copy of the query.
func (q *Query) Clone() *Query {
	return &Query{
		ID:   q.ID,
		Name: q.Name,
		Type: q.Type,
	}
}

// NewMessage creates a new [*Message] from the [*Query].
//
// The domain name is IDNA encoded using the lookup profile, which also
// rejects names that are not valid for lookup (e.g., names containing
// spaces) and folds the name to lowercase.
func (q *Query) NewMessage() (*Message, error) {
	// IDNA encode the domain name.
	punyName, err := idna.Lookup.ToASCII(q.Name)
	if err != nil {
		return nil, err
	}

	// Names in this codec carry no trailing dot.
	punyName = strings.TrimSuffix(punyName, ".")

	// Create the query message.
	msg := NewMessage()
	msg.Header.ID = q.ID
	msg.Header.Reply = false
	msg.Header.RecursionDesired = true
	msg.Header.QuestionCount = 1
	msg.Questions = []Question{{
		Name:  punyName,
		Type:  q.Type,
		Class: QClassIN,
	}}
	return msg, nil
}
