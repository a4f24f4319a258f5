/*
Package file provides the flat-file payroll.Store.

FORMAT:
  UTF-8 text, one record per line, newline-terminated:

    fromDate|toDate|name|hours|rate|taxRate

  No header, no trailer, no versioning. See payroll/codec.go.

APPEND:
  Each Append opens the file with O_APPEND|O_CREATE, writes one line and
  closes it. Existing content is never truncated or reordered; a missing
  final newline is supplied first. There is no locking between calls: one
  process owns the file.

READ:
  ReadAll returns every line. A file that does not exist yet reads as empty.

SEE ALSO:
  - payroll/store.go: Store interface
  - payroll/ledger.go: Decoding and skipping of bad lines
*/
package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/warp/payroll/payroll"
)

// Store is a flat-file record store.
type Store struct {
	path string
}

// New returns a store backed by the file at path. The file is created on
// the first Append.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append writes one encoded record followed by a newline. If the file
// does not end in a newline (hand-edited), one is written first so the
// last existing line is not joined to the new one.
func (s *Store) Append(ctx context.Context, r payroll.Record) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()

	line := payroll.Encode(r) + "\n"
	terminated, err := endsWithNewline(f)
	if err != nil {
		return fmt.Errorf("inspect store: %w", err)
	}
	if !terminated {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// endsWithNewline reports whether f is empty or its last byte is '\n'.
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

// ReadAll returns every line of the file in order, without line endings.
// Lines of any length are returned; deciding whether they decode is the
// ledger's job.
func (s *Store) ReadAll(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	lines := []string{}
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read store: %w", err)
		}
	}
}
