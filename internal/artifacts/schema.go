package artifacts

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jszwec/csvutil"
)

// FeatureColumn is the CSV header naming the feature list column.
const FeatureColumn = "feature_name"

// Schema is the ordered, unique feature-name list that defines both the
// required inputs and the column order the classifier was trained on.
type Schema struct {
	names []string
	index map[string]int
}

type featureRow struct {
	Name string `csv:"feature_name"`
}

// NewSchema validates names and builds a Schema. Names must be non-empty,
// non-blank, and unique.
func NewSchema(names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, ErrEmptySchema
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("feature %d has a blank name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate feature %q", name)
		}
		index[name] = i
	}

	return &Schema{names: slices.Clone(names), index: index}, nil
}

// Names returns a copy of the feature names in training order.
func (s *Schema) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of features.
func (s *Schema) Len() int {
	return len(s.names)
}

// Index returns the column position of name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// ReadSchema decodes a CSV feature list with a feature_name header column.
func ReadSchema(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feature list: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySchema
	}

	dec, err := csvutil.NewDecoder(csv.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("read feature list header: %w", err)
	}
	dec.DisallowMissingColumns = true

	var names []string
	for {
		var row featureRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode feature list: %w", err)
		}
		names = append(names, strings.TrimSpace(row.Name))
	}

	return NewSchema(names)
}

// WriteSchema encodes s as a CSV feature list readable by ReadSchema.
func WriteSchema(w io.Writer, s *Schema) error {
	rows := make([]featureRow, len(s.names))
	for i, name := range s.names {
		rows[i] = featureRow{Name: name}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode feature list: %w", err)
	}
	_, err = w.Write(data)
	return err
}
