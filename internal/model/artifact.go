package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"attrisk/internal/scoring"
)

// Supported artifact algorithms.
const (
	algorithmLogisticRegression = "logistic_regression"
	algorithmDecisionList       = "decision_list"
)

// artifact is the on-disk JSON shape. One file describes exactly one of the
// supported algorithms.
type artifact struct {
	Algorithm    string    `json:"algorithm"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Rules        []rule    `json:"rules"`
	DefaultLabel int       `json:"default_label"`
}

type rule struct {
	Feature   string  `json:"feature"`
	Op        string  `json:"op"` // "gt" or "le"
	Threshold float64 `json:"threshold"`
	Label     int     `json:"label"`
}

// Load reads and validates a classifier artifact. A missing or corrupt file
// is an error the caller may treat as recoverable: the process starts and
// scoring requests fail until a valid artifact is deployed.
func Load(path string) (Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	switch a.Algorithm {
	case algorithmLogisticRegression:
		return newLogistic(a)
	case algorithmDecisionList:
		return newDecisionList(a)
	default:
		return nil, fmt.Errorf("unsupported model algorithm %q", a.Algorithm)
	}
}

// logistic implements both Predict and PredictProba.
type logistic struct {
	features     []string
	coefficients []float64
	intercept    float64
}

func newLogistic(a artifact) (*logistic, error) {
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("logistic artifact declares no features")
	}
	if len(a.Features) != len(a.Coefficients) {
		return nil, fmt.Errorf("logistic artifact has %d features but %d coefficients",
			len(a.Features), len(a.Coefficients))
	}
	var probe scoring.FeatureVector
	for _, name := range a.Features {
		if _, ok := probe.Value(name); !ok {
			return nil, fmt.Errorf("logistic artifact references unknown feature %q", name)
		}
	}
	return &logistic{
		features:     a.Features,
		coefficients: a.Coefficients,
		intercept:    a.Intercept,
	}, nil
}

func (m *logistic) Predict(fv scoring.FeatureVector) (int, error) {
	p, err := m.PredictProba(fv)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (m *logistic) PredictProba(fv scoring.FeatureVector) (float64, error) {
	z := m.intercept
	for i, name := range m.features {
		v, ok := fv.Value(name)
		if !ok {
			return 0, fmt.Errorf("feature %q not present in vector", name)
		}
		z += m.coefficients[i] * v
	}
	return 1 / (1 + math.Exp(-z)), nil
}

// decisionList implements Predict only; it carries no probability estimate.
type decisionList struct {
	rules        []rule
	defaultLabel int
}

func newDecisionList(a artifact) (*decisionList, error) {
	if len(a.Rules) == 0 {
		return nil, fmt.Errorf("decision list artifact declares no rules")
	}
	var probe scoring.FeatureVector
	for _, r := range a.Rules {
		if _, ok := probe.Value(r.Feature); !ok {
			return nil, fmt.Errorf("decision list references unknown feature %q", r.Feature)
		}
		if r.Op != "gt" && r.Op != "le" {
			return nil, fmt.Errorf("decision list has unsupported op %q", r.Op)
		}
	}
	return &decisionList{rules: a.Rules, defaultLabel: a.DefaultLabel}, nil
}

func (m *decisionList) Predict(fv scoring.FeatureVector) (int, error) {
	for _, r := range m.rules {
		v, _ := fv.Value(r.Feature)
		switch r.Op {
		case "gt":
			if v > r.Threshold {
				return r.Label, nil
			}
		case "le":
			if v <= r.Threshold {
				return r.Label, nil
			}
		}
	}
	return m.defaultLabel, nil
}
