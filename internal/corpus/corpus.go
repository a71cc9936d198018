// Package corpus loads the paired employee/customer transcript files.
package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/storage"
	"github.com/ppiankov/diatax/internal/textutil"
)

// ErrCallNotFound is returned when no record carries the requested call id
var ErrCallNotFound = errors.New("call not found")

// Corpus holds both transcript collections in file order
type Corpus struct {
	Employee []model.CallRecord
	Customer []model.CallRecord
}

// Load reads both transcript files in parallel. Either file failing fails the
// whole load; no partial corpus is returned.
func Load(employeePath, customerPath string) (*Corpus, error) {
	var c Corpus
	var g errgroup.Group

	g.Go(func() error {
		records, err := LoadSide(employeePath, model.SideEmployee)
		c.Employee = records
		return err
	})
	g.Go(func() error {
		records, err := LoadSide(customerPath, model.SideCustomer)
		c.Customer = records
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadSide reads one transcript file. Each record needs a call_id and the
// side's text field; the text may be a single string or a list of strings.
func LoadSide(path string, side model.Side) ([]model.CallRecord, error) {
	var raw []map[string]json.RawMessage
	if err := storage.ReadJSON(path, &raw); err != nil {
		return nil, err
	}

	records := make([]model.CallRecord, 0, len(raw))
	for i, entry := range raw {
		rec, err := decodeRecord(entry, side)
		if err != nil {
			return nil, &storage.Error{Op: "decode", Path: path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(entry map[string]json.RawMessage, side model.Side) (model.CallRecord, error) {
	rec := model.CallRecord{Side: side}

	id, ok := entry["call_id"]
	if !ok {
		return rec, errors.New("missing call_id")
	}
	callID, err := scalar(id)
	if err != nil {
		return rec, fmt.Errorf("call_id: %w", err)
	}
	rec.CallID = callID

	if pid, ok := entry[side.IDKey()]; ok {
		if rec.ParticipantID, err = scalar(pid); err != nil {
			return rec, fmt.Errorf("%s: %w", side.IDKey(), err)
		}
	}

	text, ok := entry[side.TextKey()]
	if !ok {
		return rec, fmt.Errorf("missing %s", side.TextKey())
	}
	lines, err := utterances(text)
	if err != nil {
		return rec, fmt.Errorf("%s: %w", side.TextKey(), err)
	}
	for _, line := range lines {
		rec.Text = append(rec.Text, textutil.Lower(line))
	}
	if rec.Text == nil {
		rec.Text = []string{}
	}
	return rec, nil
}

// scalar accepts a JSON string or number and returns its text form
func scalar(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	default:
		return "", fmt.Errorf("expected string or number, got %s", bytes.TrimSpace(raw))
	}
}

func utterances(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, errors.New("expected a string or a list of strings")
	}
	return []string{single}, nil
}

// Records returns the collection for one side
func (c *Corpus) Records(side model.Side) []model.CallRecord {
	if side == model.SideCustomer {
		return c.Customer
	}
	return c.Employee
}

// All returns employee records followed by customer records
func (c *Corpus) All() []model.CallRecord {
	out := make([]model.CallRecord, 0, len(c.Employee)+len(c.Customer))
	out = append(out, c.Employee...)
	return append(out, c.Customer...)
}

// CallIDs lists every distinct call id, employee order first, then ids that
// only appear on the customer side.
func (c *Corpus) CallIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, rec := range c.All() {
		if seen[rec.CallID] {
			continue
		}
		seen[rec.CallID] = true
		ids = append(ids, rec.CallID)
	}
	return ids
}

// Utterances returns the total utterance count across both sides
func (c *Corpus) Utterances() int {
	n := 0
	for _, rec := range c.All() {
		n += len(rec.Text)
	}
	return n
}

// FindTextByCallID returns the text of the first record matching callID
func FindTextByCallID(records []model.CallRecord, callID string) ([]string, error) {
	for _, rec := range records {
		if rec.CallID == callID {
			return rec.Text, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCallNotFound, callID)
}

// Call returns both sides of a call. It fails only when neither side has it.
func (c *Corpus) Call(callID string) (employee, customer []string, err error) {
	employee, errEmp := FindTextByCallID(c.Employee, callID)
	customer, errCust := FindTextByCallID(c.Customer, callID)
	if errEmp != nil && errCust != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrCallNotFound, callID)
	}
	return employee, customer, nil
}
