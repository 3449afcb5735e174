// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

// Message is a complete DNS message: one header, the question entries, and
// the answer records, in wire order. Authority and additional sections are
// not modeled; their header counts decode but no records are read for them,
// and both counts are forced to zero on encode.
type Message struct {
	// Header is the fixed 12-byte header.
	Header Header

	// Questions are the question entries, in wire order.
	Questions []Question

	// Answers are the answer records, in wire order.
	Answers []Record
}

// NewMessage returns an empty message with default header values.
func NewMessage() *Message {
	return &Message{Header: NewHeader()}
}

// ParseMessage decodes a full message from the buffer: the header, then
// exactly QuestionCount questions, then exactly AnswerCount records. Any
// failure aborts the whole decode; no partial message is returned.
func ParseMessage(b *PacketBuffer) (*Message, error) {
	m := NewMessage()
	if err := m.Header.Read(b); err != nil {
		return nil, err
	}

	for range m.Header.QuestionCount {
		q := NewQuestion()
		if err := q.Read(b); err != nil {
			return nil, err
		}
		m.Questions = append(m.Questions, q)
	}

	for range m.Header.AnswerCount {
		r, err := ParseRecord(b)
		if err != nil {
			return nil, err
		}
		m.Answers = append(m.Answers, r)
	}
	return m, nil
}

// Write encodes the message into the buffer. The question and answer counts
// are recomputed from the actual list lengths first, so the header can never
// disagree with the sections that follow it.
func (m *Message) Write(b *PacketBuffer) error {
	m.Header.QuestionCount = uint16(len(m.Questions))
	m.Header.AnswerCount = uint16(len(m.Answers))
	m.Header.AuthorityCount = 0
	m.Header.AdditionalCount = 0

	if err := m.Header.Write(b); err != nil {
		return err
	}
	for i := range m.Questions {
		if err := m.Questions[i].Write(b); err != nil {
			return err
		}
	}
	for _, r := range m.Answers {
		if _, err := r.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses a raw datagram, at most [PacketBufferSize] bytes, into a
// message.
func Decode(raw []byte) (*Message, error) {
	b, err := PacketBufferFrom(raw)
	if err != nil {
		return nil, err
	}
	return ParseMessage(b)
}

// Encode serializes the message and returns the raw bytes to send.
func (m *Message) Encode() ([]byte, error) {
	b := NewPacketBuffer()
	if err := m.Write(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
