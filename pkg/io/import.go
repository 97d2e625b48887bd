package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/results"
)

// ReadJSON decodes a run exported with [WriteJSON].
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, the ID
// is not a valid run ID or a result has no backend name.
func ReadJSON(r io.Reader) (*results.Run, error) {
	var run results.Run
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode run")
	}
	if !results.ValidID(run.ID) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "run has invalid id %q", run.ID)
	}
	for i, res := range run.Results {
		if res.Backend == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "result %d has no backend", i)
		}
	}
	return &run, nil
}

// ReadJSONFile reads a run from path.
func ReadJSONFile(path string) (*results.Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
