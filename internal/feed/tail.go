package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"flakwall/internal/weblog"
)

const tailPollInterval = 500 * time.Millisecond

// TailSource follows a local access-log file, parsing each appended line
// into the journal. The file is polled rather than watched; rotation is
// handled by reopening when the file shrinks.
type TailSource struct {
	Path     string
	Parser   weblog.Parser
	Journal  *Journal
	Backfill int // lines from the end of the file to ingest at startup
}

// Start launches the follow loop in a background goroutine.
func (s *TailSource) Start(ctx context.Context) error {
	if s.Path == "" {
		return fmt.Errorf("tail source requires a path")
	}
	if s.Parser == nil || s.Journal == nil {
		return fmt.Errorf("tail source requires a parser and journal")
	}

	if s.Backfill > 0 {
		lines, err := readTail(s.Path, s.Backfill)
		if err != nil {
			return fmt.Errorf("backfill %s: %w", s.Path, err)
		}
		for _, line := range lines {
			s.append(line)
		}
	}

	go s.follow(ctx)
	return nil
}

func (s *TailSource) append(line string) {
	ev := s.Parser.Parse(line)
	if ev.ID == "" {
		ev.ID = "tail_" + uuid.NewString()
	}
	s.Journal.Append(ev)
}

func (s *TailSource) follow(ctx context.Context) {
	var offset int64 = -1 // -1 means seek to end on first open
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(tailPollInterval):
		}

		info, err := os.Stat(s.Path)
		if err != nil {
			continue
		}
		if offset < 0 || info.Size() < offset {
			// First pass, or the file was rotated/truncated.
			offset = info.Size()
			continue
		}
		if info.Size() == offset {
			continue
		}

		n, err := s.readFrom(offset)
		if err != nil {
			log.Printf("feed: tail %s: %v", s.Path, err)
			continue
		}
		offset = n
	}
}

func (s *TailSource) readFrom(offset int64) (int64, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return offset, err
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// Leave a trailing partial line for the next poll.
			return offset, nil
		}
		offset += int64(len(line))
		if trimmed := line[:len(line)-1]; trimmed != "" {
			s.append(trimmed)
		}
	}
}

// readTail returns at most maxLines from the end of the file at path.
func readTail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
