package stage

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
)

const loadCSVStage = "load-csv"

func init() {
	Register(loadCSVStage, loadCSVRunner)
}

// loadCSVRunner reads the input file into a raw Table. Any failure to open
// or parse the file is a CSVReadError; the file handle is released as soon
// as the table is in memory.
func loadCSVRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	if in.Meta == nil || in.Meta.CSVPath == "" {
		return Envelope{}, CSVReadError{Err: errors.New("no input path")}
	}

	f, err := os.Open(in.Meta.CSVPath)
	if err != nil {
		return Envelope{}, CSVReadError{Err: err}
	}
	table, err := readTable(f)
	_ = f.Close()
	if err != nil {
		return Envelope{}, CSVReadError{Err: err}
	}

	out := in
	out.Table = table
	return out, nil
}

// readTable parses delimited text into a header plus data rows. A file with
// no rows at all is unparseable, matching the loader this replaces; a file
// with only a header row is a valid empty table.
func readTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no columns to parse from file")
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return &Table{Header: header, Rows: rows}, nil
}
