// Package snapshot reads network snapshots from disk and watches them for
// changes. It is the I/O boundary in front of the graph engine.
package snapshot

import (
	"bytes"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/graph"
)

// Decode parses one JSON snapshot from r.
func Decode(r io.Reader) (*graph.Snapshot, error) {
	var snap graph.Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "failed to decode snapshot"),
			"a snapshot is a JSON object with nodes, links, components, table and meta",
		)
	}
	if len(snap.Nodes) == 0 && len(snap.Links) > 0 {
		return nil, errors.NewInvalidRequestError("snapshot has %d links but no nodes", len(snap.Links))
	}
	return &snap, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*graph.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("snapshot %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read snapshot %s", path)
	}
	snap, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return snap, nil
}

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap *graph.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}
	return nil
}
