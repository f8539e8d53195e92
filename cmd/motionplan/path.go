package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/tobiaskohlbau/RobotMotionPlanner/motionplan"
)

// pathDocument is the persisted Path artifact of spec §6:
// {"Dimension": D, "NumberConfigurations": N, "data": [[d1,...,dD], ...]}.
type pathDocument struct {
	Dimension            int         `json:"Dimension"`
	NumberConfigurations int         `json:"NumberConfigurations"`
	Data                 [][]float64 `json:"data"`
}

// newPathDocument converts a planned configuration sequence into the
// persisted shape, scaling every component by factor (1 leaves it unscaled).
func newPathDocument(path []motionplan.Configuration, factor float64) pathDocument {
	doc := pathDocument{
		NumberConfigurations: len(path),
		Data:                 make([][]float64, len(path)),
	}
	if len(path) > 0 {
		doc.Dimension = path[0].Dim()
	}
	for i, cfg := range path {
		row := make([]float64, len(cfg))
		for j, v := range cfg {
			row[j] = v * factor
		}
		doc.Data[i] = row
	}
	return doc
}

// writePathDocument marshals doc as indented JSON to outPath, or to stdout
// when outPath is empty.
func writePathDocument(doc pathDocument, outPath string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling path document")
	}
	if outPath == "" {
		_, err := os.Stdout.Write(append(raw, '\n'))
		return err
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return errors.Wrapf(err, "writing path document to %s", outPath)
	}
	return nil
}
