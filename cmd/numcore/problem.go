// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/numcore/scalar"
)

// Output formats for result printing.
const (
	outputText = "text"
	outputYAML = "yaml"
)

// problem is the YAML document read by solve, invert and multiply.
type problem struct {
	Kind   string      `yaml:"kind"`
	Matrix [][]float64 `yaml:"matrix"`
	RHS    []float64   `yaml:"rhs"`
	A      [][]float64 `yaml:"a"`
	B      [][]float64 `yaml:"b"`
}

func readProblem(path string) (*problem, error) {
	if path == "" {
		return nil, fmt.Errorf("no problem file given (use -f)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	p := &problem{}
	if err = dec.Decode(p); err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}

	return p, nil
}

// kind resolves the element kind, defaulting to float64.
func (p *problem) kind() (scalar.Kind, error) {
	if p.Kind == "" {
		return scalar.Float64, nil
	}

	return scalar.ParseKind(p.Kind)
}

// require reports the first missing key among names.
func (p *problem) require(names ...string) error {
	for _, name := range names {
		var empty bool
		switch name {
		case "matrix":
			empty = len(p.Matrix) == 0
		case "rhs":
			empty = len(p.RHS) == 0
		case "a":
			empty = len(p.A) == 0
		case "b":
			empty = len(p.B) == 0
		}
		if empty {
			return fmt.Errorf("problem file has no %q", name)
		}
	}

	return nil
}

// narrow converts rows read as float64 into the requested float kind.
func narrow[T float32 | float64](rows [][]float64) [][]T {
	out := make([][]T, len(rows))
	for i, r := range rows {
		out[i] = make([]T, len(r))
		for j, v := range r {
			out[i][j] = T(v)
		}
	}

	return out
}

// printResult writes value under name either as a text line/block or as a
// single-key YAML document.
func printResult(w io.Writer, format, name string, value any, text fmt.Stringer) error {
	switch format {
	case outputText:
		s := text.String()
		if len(s) > 0 && s[len(s)-1] == '\n' {
			_, err := fmt.Fprintf(w, "%s =\n%s", name, s)
			return err
		}
		_, err := fmt.Fprintf(w, "%s = %s\n", name, s)
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{name: value}); err != nil {
			return err
		}
		return enc.Close()
	}

	return fmt.Errorf("unknown output format %q (want text or yaml)", format)
}
