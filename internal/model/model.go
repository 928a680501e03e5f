// Package model wraps the pre-trained classifier artifact. The artifact is
// loaded once at startup and is read-only afterwards, so an Adapter is safe
// for unbounded concurrent use.
package model

import (
	"attrisk/internal/scoring"
	"attrisk/pkg/platform/sentinel"
)

// Classifier predicts the attrition label for a feature vector.
type Classifier interface {
	Predict(fv scoring.FeatureVector) (int, error)
}

// ProbabilityEstimator is the optional capability of classifiers that can
// also estimate the probability mass of the positive (at-risk) class.
type ProbabilityEstimator interface {
	PredictProba(fv scoring.FeatureVector) (float64, error)
}

// Adapter normalizes classifier output into a label + probability pair.
// The probability capability is resolved once at construction, not per
// request. A nil classifier puts the adapter into its not-loaded state:
// every Score call fails with sentinel.ErrNotLoaded and no default
// prediction is ever returned.
type Adapter struct {
	clf   Classifier
	proba ProbabilityEstimator
}

// NewAdapter builds an adapter around a loaded classifier. Passing nil is
// valid and yields the not-loaded sentinel state.
func NewAdapter(clf Classifier) *Adapter {
	a := &Adapter{clf: clf}
	if p, ok := clf.(ProbabilityEstimator); ok {
		a.proba = p
	}
	return a
}

// Loaded reports whether a classifier artifact is available.
func (a *Adapter) Loaded() bool {
	return a != nil && a.clf != nil
}

// Score runs the classifier. Probability defaults to 0.0 when the
// classifier exposes no probability estimate.
func (a *Adapter) Score(fv scoring.FeatureVector) (scoring.ScoreResult, error) {
	if !a.Loaded() {
		return scoring.ScoreResult{}, sentinel.ErrNotLoaded
	}

	label, err := a.clf.Predict(fv)
	if err != nil {
		return scoring.ScoreResult{}, err
	}

	result := scoring.ScoreResult{Prediction: label}
	if a.proba != nil {
		p, err := a.proba.PredictProba(fv)
		if err != nil {
			return scoring.ScoreResult{}, err
		}
		result.Probability = p
	}
	return result, nil
}
