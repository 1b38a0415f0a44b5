package tinysr

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// LoadModel reads a model file from path, appending each parsed
// template to ctx's model and its word name to ctx.WordNames. It
// returns the number of templates newly loaded.
//
// A model file is a concatenation of entries until EOF (see the wire
// format in model.go's readTemplate). A short read at any field after
// an entry's initial name length is returned as a *ModelError; entries successfully
// parsed before the error are retained, matching §7's "partial
// entries are freed, entries already appended are retained" rule.
func (ctx *Context) LoadModel(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &ModelError{Path: path, Err: err}
	}
	defer f.Close()

	count := 0
	for {
		tmpl, err := readTemplate(f)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return count, &ModelError{Path: path, Err: err}
		}
		tmpl.WordIndex = len(ctx.model)
		ctx.model = append(ctx.model, tmpl)
		ctx.WordNames = append(ctx.WordNames, tmpl.WordName)
		count++
	}
	return count, nil
}

// readTemplate reads one entry. A clean io.EOF (zero bytes read at
// the name-length field) signals end of file; any other short read
// returns io.ErrUnexpectedEOF.
func readTemplate(r io.Reader) (_ Template, err error) {
	var nameLength uint32
	if err := binary.Read(r, binary.LittleEndian, &nameLength); err != nil {
		if errors.Is(err, io.EOF) {
			return Template{}, io.EOF
		}
		return Template{}, err
	}
	// Past the name-length field, running out of input is a short read.
	defer func() {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
	}()

	nameBytes := make([]byte, nameLength)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return Template{}, err
	}

	var llOffset, llSlope float32
	if err := binary.Read(r, binary.LittleEndian, &llOffset); err != nil {
		return Template{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &llSlope); err != nil {
		return Template{}, err
	}

	var templateLength uint32
	if err := binary.Read(r, binary.LittleEndian, &templateLength); err != nil {
		return Template{}, err
	}

	gaussians := make([]Gaussian, templateLength)
	for i := range gaussians {
		var offset float32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return Template{}, err
		}
		var mean [NumCepstrum]float32
		if err := binary.Read(r, binary.LittleEndian, &mean); err != nil {
			return Template{}, err
		}
		var invCovar [NumCepstrum * NumCepstrum]float32
		if err := binary.Read(r, binary.LittleEndian, &invCovar); err != nil {
			return Template{}, err
		}

		g := &gaussians[i]
		g.Offset = float64(offset)
		for j := 0; j < NumCepstrum; j++ {
			g.Mean[j] = float64(mean[j])
		}
		for a := 0; a < NumCepstrum; a++ {
			for b := 0; b < NumCepstrum; b++ {
				g.InverseCovar[a][b] = float64(invCovar[a*NumCepstrum+b])
			}
		}
		g.prepare()
	}

	return Template{
		WordName:  string(nameBytes),
		LLOffset:  float64(llOffset),
		LLSlope:   float64(llSlope),
		Gaussians: gaussians,
	}, nil
}

// WriteModel is the inverse of LoadModel, used by the model round-trip
// test and by tooling that builds model files from recorded
// utterances. It is not part of the core recognition contract but is
// the natural counterpart to LoadModel.
func WriteModel(path string, templates []Template) error {
	f, err := os.Create(path)
	if err != nil {
		return &ModelError{Path: path, Err: err}
	}
	defer f.Close()

	for _, tmpl := range templates {
		if err := writeTemplate(f, tmpl); err != nil {
			return &ModelError{Path: path, Err: err}
		}
	}
	return nil
}

func writeTemplate(w io.Writer, tmpl Template) error {
	nameBytes := []byte(tmpl.WordName)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(nameBytes))); err != nil {
		return err
	}
	if _, err := w.Write(nameBytes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, float32(tmpl.LLOffset)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, float32(tmpl.LLSlope)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tmpl.Gaussians))); err != nil {
		return err
	}
	for _, g := range tmpl.Gaussians {
		if err := binary.Write(w, binary.LittleEndian, float32(g.Offset)); err != nil {
			return err
		}
		var mean [NumCepstrum]float32
		for j := 0; j < NumCepstrum; j++ {
			mean[j] = float32(g.Mean[j])
		}
		if err := binary.Write(w, binary.LittleEndian, mean); err != nil {
			return err
		}
		var invCovar [NumCepstrum * NumCepstrum]float32
		for a := 0; a < NumCepstrum; a++ {
			for b := 0; b < NumCepstrum; b++ {
				invCovar[a*NumCepstrum+b] = float32(g.InverseCovar[a][b])
			}
		}
		if err := binary.Write(w, binary.LittleEndian, invCovar); err != nil {
			return err
		}
	}
	return nil
}
