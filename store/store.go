// Package store reads and writes the line-oriented delimited files every
// collection is persisted in. Fields are quoted only when they contain the
// delimiter, a quote or a line break, so plain rows stay readable and legacy
// unquoted files load unchanged.
package store

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

const (
	Comma     = ','
	Semicolon = ';'
)

type File struct {
	Path      string
	Delimiter rune
	Header    []string
}

// ReadRows returns every non-empty row, skipping the header line when the
// file declares one. A missing file yields no rows and no error.
func (f File) ReadRows() ([][]string, error) {
	fd, err := os.Open(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, model.IOError("open", f.Path, err)
	}
	defer fd.Close()

	r := csv.NewReader(fd)
	r.Comma = f.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, model.IOError("read", f.Path, err)
		}
		if first && len(f.Header) > 0 {
			first = false
			continue
		}
		first = false
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows truncates the file and writes the header followed by rows. The
// rewrite is not atomic against a crash.
func (f File) WriteRows(rows [][]string) error {
	fd, err := os.Create(f.Path)
	if err != nil {
		return model.IOError("create", f.Path, err)
	}

	w := f.writer(fd)
	if len(f.Header) > 0 {
		if err := w.Write(f.Header); err != nil {
			fd.Close()
			return model.IOError("write", f.Path, err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		fd.Close()
		return model.IOError("write", f.Path, err)
	}
	if err := fd.Close(); err != nil {
		return model.IOError("close", f.Path, err)
	}
	return nil
}

// AppendRow adds a single row at the end of the file, creating it if needed.
func (f File) AppendRow(row []string) error {
	fd, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return model.IOError("open", f.Path, err)
	}

	w := f.writer(fd)
	if err := w.Write(row); err != nil {
		fd.Close()
		return model.IOError("append", f.Path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fd.Close()
		return model.IOError("append", f.Path, err)
	}
	if err := fd.Close(); err != nil {
		return model.IOError("close", f.Path, err)
	}
	return nil
}

// Touch creates the file empty if it does not exist yet.
func (f File) Touch() error {
	fd, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return model.IOError("create", f.Path, err)
	}
	return fd.Close()
}

func (f File) writer(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = f.Delimiter
	return cw
}
