package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Load читает запись сессии с диска.
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}

// Read читает заголовок и все события до конца потока.
func Read(r io.Reader) (*Session, error) {
	// 1. Заголовок
	var header RecordingFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	provider := make([]byte, header.ProviderLen)
	if _, err := io.ReadFull(r, provider); err != nil {
		return nil, fmt.Errorf("failed to read provider name: %w", err)
	}
	key := make([]byte, header.KeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to read world key: %w", err)
	}

	s := &Session{
		Timestamp: header.Timestamp,
		Width:     int(header.Width),
		Height:    int(header.Height),
		Provider:  string(provider),
		Key:       string(key),
	}

	// 2. События до EOF
	for {
		var eh EventHeader
		err := binary.Read(r, binary.LittleEndian, &eh)
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event %d: %w", len(s.Events), err)
		}

		ev := Event{
			Frame: eh.Frame,
			Type:  EventType(eh.Type),
			Keys:  eh.Keys,
			Clock: eh.Clock,
			X:     eh.X,
			Y:     eh.Y,
		}
		if eh.TextLen > 0 {
			text := make([]byte, eh.TextLen)
			if _, err := io.ReadFull(r, text); err != nil {
				return nil, fmt.Errorf("failed to read event %d text: %w", len(s.Events), err)
			}
			ev.Text = string(text)
		}
		s.Events = append(s.Events, ev)
	}
}
