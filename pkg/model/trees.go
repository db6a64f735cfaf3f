package model

import "fmt"

// Node is one split or leaf of a regression tree. Leaves carry Feature < 0
// and contribute Value to the ensemble margin.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Leaf reports whether the node terminates traversal.
func (n Node) Leaf() bool {
	return n.Feature < 0
}

// Tree is a flattened regression tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t Tree) margin(x []float64) float64 {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.Leaf() {
			return n.Value
		}
		if x[n.Feature] < n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

// BoostedTrees is a gradient-boosted ensemble with a logistic link, the
// portable export of a binary:logistic booster.
type BoostedTrees struct {
	NumFeatures int     `json:"num_features"`
	BaseMargin  float64 `json:"base_margin"`
	Trees       []Tree  `json:"trees"`
}

// Predict returns 1 when the positive class is the more probable one.
func (m *BoostedTrees) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return argmax(proba), nil
}

// PredictProba sums leaf margins across all trees and applies the sigmoid.
func (m *BoostedTrees) PredictProba(x []float64) ([]float64, error) {
	if len(x) != m.NumFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), m.NumFeatures)
	}

	z := m.BaseMargin
	for _, t := range m.Trees {
		z += t.margin(x)
	}

	return binary(sigmoid(z)), nil
}

// Dimension returns the number of input features.
func (m *BoostedTrees) Dimension() int {
	return m.NumFeatures
}

// validate guarantees traversal terminates: every child index points
// forward within the tree and every split feature is in range.
func (m *BoostedTrees) validate() error {
	if m.NumFeatures <= 0 || len(m.Trees) == 0 {
		return ErrEmpty
	}
	if !finite(m.BaseMargin) {
		return fmt.Errorf("%w: non-finite base margin", ErrInvalid)
	}

	for ti, t := range m.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d has no nodes", ErrInvalid, ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf() {
				if !finite(n.Value) {
					return fmt.Errorf("%w: tree %d node %d non-finite leaf", ErrInvalid, ti, ni)
				}
				continue
			}
			if n.Feature >= m.NumFeatures {
				return fmt.Errorf("%w: tree %d node %d feature %d out of range", ErrInvalid, ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("%w: tree %d node %d child out of range", ErrInvalid, ti, ni)
			}
		}
	}
	return nil
}
