package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Artifact type discriminators written to the "type" field of an envelope.
const (
	TypeLogistic     = "logistic_regression"
	TypeBoostedTrees = "gradient_boosted_trees"
	TypeStandard     = "standard_scaler"
	TypePassthrough  = "passthrough"
)

type envelope struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params,omitempty"`
}

// DecodeClassifier reads a classifier envelope. Returns ErrNull when the
// payload is empty or a JSON null, ErrUnknownType for an unrecognized type,
// and ErrEmpty or ErrInvalid when the parameters cannot back inference.
func DecodeClassifier(r io.Reader) (Classifier, error) {
	env, err := readEnvelope(r)
	if err != nil {
		return nil, err
	}
	if isNull(env.Params) {
		return nil, fmt.Errorf("%w: classifier params", ErrNull)
	}

	switch env.Type {
	case TypeLogistic:
		var m Logistic
		if err := unmarshalParams(env.Params, &m); err != nil {
			return nil, err
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeBoostedTrees:
		var m BoostedTrees
		if err := unmarshalParams(env.Params, &m); err != nil {
			return nil, err
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("%w: classifier %q", ErrUnknownType, env.Type)
	}
}

// DecodeScaler reads a scaler envelope. A passthrough envelope, or a
// standard scaler without a scale, decodes to an unfitted scaler.
func DecodeScaler(r io.Reader) (Scaler, error) {
	env, err := readEnvelope(r)
	if err != nil {
		return nil, err
	}

	switch env.Type {
	case TypePassthrough:
		return Passthrough{}, nil
	case TypeStandard:
		var s Standard
		if !isNull(env.Params) {
			if err := unmarshalParams(env.Params, &s); err != nil {
				return nil, err
			}
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("%w: scaler %q", ErrUnknownType, env.Type)
	}
}

// EncodeClassifier writes c as an envelope readable by DecodeClassifier.
func EncodeClassifier(w io.Writer, c Classifier) error {
	switch m := c.(type) {
	case *Logistic:
		return writeEnvelope(w, TypeLogistic, m)
	case *BoostedTrees:
		return writeEnvelope(w, TypeBoostedTrees, m)
	default:
		return fmt.Errorf("%w: classifier %T", ErrUnknownType, c)
	}
}

// EncodeScaler writes s as an envelope readable by DecodeScaler.
func EncodeScaler(w io.Writer, s Scaler) error {
	switch m := s.(type) {
	case *Standard:
		return writeEnvelope(w, TypeStandard, m)
	case Passthrough, *Passthrough:
		return writeEnvelope(w, TypePassthrough, nil)
	default:
		return fmt.Errorf("%w: scaler %T", ErrUnknownType, s)
	}
}

func readEnvelope(r io.Reader) (*envelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	if isNull(data) {
		return nil, ErrNull
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalid)
	}
	return &env, nil
}

func writeEnvelope(w io.Writer, typ string, params any) error {
	env := envelope{Type: typ}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("encode %s params: %w", typ, err)
		}
		env.Params = raw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func unmarshalParams(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
