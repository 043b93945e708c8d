package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer дописывает события в запись по мере игры.
type Writer struct {
	buf    *bufio.Writer
	closer io.Closer
	count  int
}

// Create открывает файл записи и пишет заголовок. Недостающие каталоги создаются.
func Create(path string, s Session) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create recording dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}
	w, err := NewWriter(f, s)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewWriter пишет заголовок сессии в w. События из s.Events не пишутся.
func NewWriter(w io.Writer, s Session) (*Writer, error) {
	provider, key := []byte(s.Provider), []byte(s.Key)
	if len(provider) > 255 {
		return nil, fmt.Errorf("provider name too long: %d", len(provider))
	}
	if len(key) > 65535 {
		return nil, fmt.Errorf("world key too long: %d", len(key))
	}

	header := RecordingFileHeader{
		Version:     Version1,
		Timestamp:   s.Timestamp,
		Width:       int32(s.Width),
		Height:      int32(s.Height),
		ProviderLen: uint8(len(provider)),
		KeyLen:      uint16(len(key)),
	}
	copy(header.Magic[:], MagicHeader)

	out := &Writer{buf: bufio.NewWriter(w)}
	if err := binary.Write(out.buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := out.buf.Write(provider); err != nil {
		return nil, err
	}
	if _, err := out.buf.Write(key); err != nil {
		return nil, err
	}
	return out, nil
}

// Record дописывает одно событие.
func (w *Writer) Record(ev Event) error {
	text := []byte(ev.Text)
	if len(text) > 65535 {
		return fmt.Errorf("event text too long: %d", len(text))
	}
	eh := EventHeader{
		Frame:   ev.Frame,
		Type:    uint8(ev.Type),
		Keys:    ev.Keys,
		TextLen: uint16(len(text)),
		Clock:   ev.Clock,
		X:       ev.X,
		Y:       ev.Y,
	}
	if err := binary.Write(w.buf, binary.LittleEndian, &eh); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if _, err := w.buf.Write(text); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count - сколько событий записано.
func (w *Writer) Count() int {
	return w.count
}

// Close сбрасывает буфер и закрывает файл, если он открыт через Create.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush recording: %w", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
