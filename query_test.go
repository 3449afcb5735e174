// SPDX-License-Identifier: BSD-3-Clause

package dnswire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryClone(t *testing.T) {
	query := &Query{
		ID:   1234,
		Name: "www.example.com",
		Type: QTypeA,
	}

	clone := query.Clone()

	require.NotSame(t, query, clone)
	require.Equal(t, query, clone)

	clone.ID = 5678
	clone.Name = "www.example.net"
	clone.Type = QTypeTXT

	require.Equal(t, uint16(1234), query.ID)
	require.Equal(t, "www.example.com", query.Name)
	require.Equal(t, QTypeA, query.Type)
}

func TestQueryNewMessage(t *testing.T) {
	query := NewQuery("www.Example.COM", QTypeA)
	query.ID = 42

	msg, err := query.NewMessage()
	require.NoError(t, err)
	require.Equal(t, uint16(42), msg.Header.ID)
	require.False(t, msg.Header.Reply)
	require.True(t, msg.Header.RecursionDesired)
	require.Equal(t, uint16(1), msg.Header.QuestionCount)
	require.Len(t, msg.Questions, 1)
	require.Equal(t, "www.example.com", msg.Questions[0].Name)
	require.Equal(t, QTypeA, msg.Questions[0].Type)
	require.Equal(t, QClassIN, msg.Questions[0].Class)
}

func TestQueryNewMessageIDNA(t *testing.T) {
	query := &Query{
		ID:   42,
		Name: "bücher.example",
		Type: QTypeA,
	}

	msg, err := query.NewMessage()
	require.NoError(t, err)
	require.Len(t, msg.Questions, 1)
	require.Equal(t, "xn--bcher-kva.example", msg.Questions[0].Name)
}

func TestQueryNewMessageIDNAError(t *testing.T) {
	query := &Query{
		Name: "bad name.example",
		Type: QTypeA,
	}

	_, err := query.NewMessage()
	require.Error(t, err)
}

func TestQueryNewMessageEncodes(t *testing.T) {
	query := NewQuery("www.example.com", QTypeA)
	query.ID = 7

	msg, err := query.NewMessage()
	require.NoError(t, err)

	raw, err := msg.Encode()
	require.NoError(t, err)
	// header(12) + name(17) + qtype(2) + qclass(2)
	require.Len(t, raw, 33)

	parsed, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, msg, parsed)
}
