// Package fasta scans reference FASTA files and records per-sequence
// signatures next to the index artifacts.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"
)

// Record is a parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// openReader opens a reference file, transparently decompressing gzip
// input. Gzip is detected by magic number (1F 8B) or by .gz suffix.
func openReader(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &gzipReadCloser{Reader: gr, gz: gr, file: fh}, nil
	}
	return fh, nil
}

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	io.Reader
	gz   io.Closer
	file io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.gz.Close()
	if ferr := g.file.Close(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

// streamRecords parses FASTA from r and calls emit for every record.
// It is cancelable between records.
func streamRecords(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id  string
		seq = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if id == "" && len(seq) == 0 {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) > 0 && line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			header := bytes.TrimSpace(line[1:])
			if i := bytes.IndexAny(header, " \t"); i >= 0 {
				header = header[:i]
			}
			id = string(header)
			seq = seq[:0]

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}
