// Package storage reads and writes the flat JSON files the toolkit works on.
// Writes are atomic: readers only ever see the previous file or the new one.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrStorage matches every *Error via errors.Is
var ErrStorage = errors.New("storage error")

// Error reports a missing, unreadable or malformed data file
type Error struct {
	Op   string // read, decode, write
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) true for any *Error
func (e *Error) Is(target error) bool {
	return target == ErrStorage
}

// ReadJSON decodes the file at path into v
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Op: "decode", Path: path, Err: err}
	}
	return nil
}

// Encode renders v as indented UTF-8 JSON without HTML or ASCII escaping, so
// accented keywords stay human-editable.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes v and atomically replaces the file at path
func WriteJSON(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return &Error{Op: "encode", Path: path, Err: err}
	}
	return WriteFile(path, data)
}

// WriteFile writes data to a temp file next to path, syncs it and renames it
// over path.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &Error{Op: "write", Path: path, Err: fmt.Errorf("create dir: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &Error{Op: "write", Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &Error{Op: "write", Path: path, Err: fmt.Errorf("sync: %w", err)}
	}
	if err = tmp.Close(); err != nil {
		return &Error{Op: "write", Path: path, Err: fmt.Errorf("close: %w", err)}
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return &Error{Op: "write", Path: path, Err: fmt.Errorf("chmod: %w", err)}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &Error{Op: "write", Path: path, Err: fmt.Errorf("rename: %w", err)}
	}
	return nil
}
