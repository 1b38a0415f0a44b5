package tinysr

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
)

// WriteFeatureVectorCSV writes one line per feature vector:
// log_energy,c0,c1,...,c12 — 14 columns, no header.
func WriteFeatureVectorCSV(path string, utterance []FeatureVector) error {
	f, err := os.Create(path)
	if err != nil {
		return &ModelError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	record := make([]string, 1+NumCepstrum)
	for _, fv := range utterance {
		record[0] = strconv.FormatFloat(fv.LogEnergy, 'g', -1, 64)
		for j := 0; j < NumCepstrum; j++ {
			record[1+j] = strconv.FormatFloat(fv.Cepstrum[j], 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return &ModelError{Path: path, Err: err}
		}
	}
	w.Flush()
	return w.Error()
}

// ReadFeatureVectorCSV reads back a file written by
// WriteFeatureVectorCSV. The returned feature vectors have Number and
// NoiseFloor left zero; CSV round-trips only the 14 scored columns.
func ReadFeatureVectorCSV(path string) ([]FeatureVector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ModelError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 1 + NumCepstrum

	var out []FeatureVector
	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, &ModelError{Path: path, Err: err}
		}
		var fv FeatureVector
		fv.LogEnergy, err = strconv.ParseFloat(record[0], 64)
		if err != nil {
			return out, &ModelError{Path: path, Err: err}
		}
		for j := 0; j < NumCepstrum; j++ {
			fv.Cepstrum[j], err = strconv.ParseFloat(record[1+j], 64)
			if err != nil {
				return out, &ModelError{Path: path, Err: err}
			}
		}
		out = append(out, fv)
	}
	return out, nil
}
