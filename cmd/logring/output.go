package main

import (
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"

	"github.com/luhtfiimanal/go-logring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type recordView struct {
	ID      uint64 `json:"id"`
	Payload string `json:"payload"`
}

// printer writes records and snapshots either as text or as JSON lines.
// Snapshots are printed as a table unless compact is set.
type printer struct {
	w       io.Writer
	asJSON  bool
	compact bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, asJSON: asJSON}
}

func (p *printer) record(rec logring.Record) error {
	if p.asJSON {
		return p.json(recordView{ID: rec.ID, Payload: string(rec.Payload)})
	}
	_, err := fmt.Fprintf(p.w, "%d\t%s\n", rec.ID, rec.Payload)
	return err
}

func (p *printer) snapshot(s logring.Snapshot) error {
	if p.asJSON {
		return p.json(s)
	}
	if !p.compact {
		return p.table(s)
	}
	_, err := fmt.Fprintf(p.w, "limit=%d head=%d tail=%d used=%d free=%d full=%t empty=%t\n",
		s.Limit, s.Head, s.Tail, s.Used, s.Free, s.Full, s.Empty)
	return err
}

func (p *printer) json(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = p.w.Write(b)
	return err
}

func (p *printer) table(s logring.Snapshot) error {
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }

	t := tablewriter.NewWriter(p.w)
	t.SetHeader([]string{"field", "value"})
	t.AppendBulk([][]string{
		{"limit", u(uint64(s.Limit))},
		{"head", u(uint64(s.Head))},
		{"tail", u(uint64(s.Tail))},
		{"used", strconv.FormatInt(s.Used, 10)},
		{"free", strconv.FormatInt(s.Free, 10)},
		{"full", strconv.FormatBool(s.Full)},
		{"empty", strconv.FormatBool(s.Empty)},
	})
	t.Render()
	return nil
}
