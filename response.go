//
// SPDX-License-Identifier: BSD-3-Clause
//

package dnswire

import (
	"errors"
	"net/netip"
	"strings"
)

// Additional errors emitted by [ValidateResponseForQuery].
var (
	// ErrInvalidQuery means that the query does not contain a single question.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidResponse means that the response is not a response message
	// or does not contain a single question matching the query.
	ErrInvalidResponse = errors.New("invalid DNS response")
)

// ValidateResponseForQuery validates a DNS response for a given query.
// On success it returns the single validated question from the query.
func ValidateResponseForQuery(query, resp *Message) (Question, error) {
	// 1. make sure the message is actually a response
	if !resp.Header.Reply {
		return Question{}, ErrInvalidResponse
	}

	// 2. make sure the response ID matches the query ID
	if resp.Header.ID != query.Header.ID {
		return Question{}, ErrInvalidResponse
	}

	// 3. make sure the query and the response contains a question
	if len(query.Questions) != 1 {
		return Question{}, ErrInvalidQuery
	}
	if len(resp.Questions) != 1 {
		return Question{}, ErrInvalidResponse
	}
	resp0 := resp.Questions[0]
	query0 := query.Questions[0]

	// 4. make sure the question name is correct
	if !replyEqualASCIIName(resp0.Name, query0.Name) {
		return Question{}, ErrInvalidResponse
	}
	if resp0.Class != query0.Class {
		return Question{}, ErrInvalidResponse
	}
	if resp0.Type != query0.Type {
		return Question{}, ErrInvalidResponse
	}
	return query0, nil
}

// SPDX-License-Identifier: BSD-3-Clause
//
// Borrowed from Go src/net package.
func replyEqualASCIIName(x, y string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := 0; i < len(x); i++ {
		a := x[i]
		b := y[i]
		if 'A' <= a && a <= 'Z' {
			a += 0x20
		}
		if 'A' <= b && b <= 'Z' {
			b += 0x20
		}
		if a != b {
			return false
		}
	}
	return true
}

func replyCanonicalName(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// These error messages use the same suffixes used by the Go standard library.
var (
	// ErrNoName indicates that the server response code is NXDOMAIN.
	ErrNoName = errors.New("no such host")

	// ErrServerMisbehaving indicates that the server response code is
	// neither 0, nor NXDOMAIN, nor SERVFAIL.
	ErrServerMisbehaving = errors.New("server misbehaving")

	// ErrServerTemporarilyMisbehaving indicates that the server answer is SERVFAIL.
	//
	// The error message is same as [ErrServerMisbehaving] for compatibility with the
	// Go standard library, which assigns the same error string to both errors.
	ErrServerTemporarilyMisbehaving = errors.New("server misbehaving")

	// ErrNoData indicates that there is no pertinent answer in the response.
	ErrNoData = errors.New("no answer from DNS server")
)

// ResponseErrorFromRCode maps the RCODE inside a valid DNS response
// to an error string using a suffix compatible with the error strings
// returned by [*net.Resolver].
//
// For example, if a domain does not exist, the error
// will use the "no such host" suffix.
//
// If the RCODE is zero, this function returns nil.
//
// Before invoking this function, make sure the response is valid
// for the request by calling [ValidateResponseForQuery].
func ResponseErrorFromRCode(resp *Message) error {
	// 1. handle NXDOMAIN case by mapping it to EAI_NONAME
	if resp.Header.RCode == RCodeNameError {
		return ErrNoName
	}

	// 2. handle the case of lame referral by mapping it to EAI_NODATA
	if resp.Header.RCode == RCodeNoError &&
		!resp.Header.Authoritative &&
		!resp.Header.RecursionAvailable &&
		len(resp.Answers) == 0 {
		return ErrNoData
	}

	// 3. handle any other error by mapping to EAI_FAIL
	if resp.Header.RCode != RCodeNoError {
		if resp.Header.RCode == RCodeServerFailure {
			return ErrServerTemporarilyMisbehaving
		}
		return ErrServerMisbehaving
	}
	return nil
}

// ResponseExtractValidAnswers extracts valid records from the response
// considering the DNS question that was asked. Before invoking this function,
// make sure the response is valid using [ValidateResponseForQuery] and it does
// not contain errors using [ResponseErrorFromRCode].
//
// The list of valid records is returned in the same order as they appear
// in the response message. If the response does not contain any valid
// records, this function returns [ErrNoData].
func ResponseExtractValidAnswers(q0 Question, resp *Message) ([]Record, error) {
	// 1. Build CNAME chain starting from the query name.
	// RFC 1034 section 4.3.1 says that "the recursive response to a query
	// will be... The answer to the query, possibly preface by one or more
	// CNAME RRs that specify aliases encountered on the way to an answer."
	//
	// We need to validate that CNAMEs form a proper chain and track all
	// valid names in that chain.
	validNames := make(map[string]bool)
	validNames[replyCanonicalName(q0.Name)] = true

	currentName := q0.Name
	for _, answer := range resp.Answers {
		if cname, ok := answer.(*CNAMERecord); ok {
			// CNAME must match the current name in the chain
			if replyEqualASCIIName(currentName, cname.Domain) {
				currentName = replyCanonicalName(cname.Target)
				validNames[currentName] = true
			}
		}
	}

	// 2. Build list of valid answers: CNAMEs that are part of the chain,
	// plus any other records that match a name in the chain. The class does
	// not need checking because this codec assumes IN throughout.
	valid := []Record{}
	for _, answer := range resp.Answers {
		var owner string
		switch answer := answer.(type) {
		case *ARecord:
			owner = answer.Domain
		case *CNAMERecord:
			owner = answer.Domain
		case *UnknownRecord:
			owner = answer.Domain
		}

		// Check if this record's name is part of the valid chain
		if !validNames[replyCanonicalName(owner)] {
			continue
		}

		// Note: there may be several record types for a given query so
		// we should not check for the type here
		valid = append(valid, answer)
	}

	// 3. Handle the case of no valid answers
	if len(valid) < 1 {
		return nil, ErrNoData
	}

	// 4. Return the list.
	return valid, nil
}

// Reply is a validated DNS response.
//
// Construct a new instance using [ParseReply].
type Reply struct {
	// Query is the original query message.
	Query *Message

	// Response is the response message.
	Response *Message

	// ValidRecords contains the valid records for the query.
	ValidRecords []Record
}

// ParseReply returns a [*Reply] given a query and a response message, or an
// error if the response message is not valid for the query.
func ParseReply(query, resp *Message) (*Reply, error) {
	q0, err := ValidateResponseForQuery(query, resp)
	if err != nil {
		return nil, err
	}

	if err := ResponseErrorFromRCode(resp); err != nil {
		return nil, err
	}

	records, err := ResponseExtractValidAnswers(q0, resp)
	if err != nil {
		return nil, err
	}

	reply := &Reply{
		Query:        query,
		Response:     resp,
		ValidRecords: records,
	}
	return reply, nil
}

// RecordsA returns all the A record addresses in the reply.
func (r *Reply) RecordsA() ([]netip.Addr, error) {
	out := make([]netip.Addr, 0, len(r.ValidRecords))
	for _, rec := range r.ValidRecords {
		switch rec := rec.(type) {
		case *ARecord:
			out = append(out, rec.Addr)
		}
	}
	if len(out) < 1 {
		return nil, ErrNoData
	}
	return out, nil
}

// RecordFirstCNAME returns the first CNAME target in the reply.
func (r *Reply) RecordFirstCNAME() (string, error) {
	for _, rec := range r.ValidRecords {
		switch rec := rec.(type) {
		case *CNAMERecord:
			return rec.Target, nil
		}
	}
	return "", ErrNoData
}
