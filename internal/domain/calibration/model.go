package calibration

import "math"

// Sample is one historical observation: a raw score margin and whether the
// franchise holding that margin won.
type Sample struct {
	Margin float64
	Won    bool
}

// Context carries per-application scaling. MarginScale normalizes margins
// before the logistic is applied; zero falls back to the scale learned
// during training.
type Context struct {
	MarginScale float64
}

// Model maps a raw score margin to a calibrated win probability. The
// fitting procedure lives in Train so it stays separable and testable
// apart from its consumers.
type Model struct {
	intercept float64
	slope     float64
	scale     float64
}

const (
	trainIterations = 500
	learningRate    = 0.05
)

// Train fits a single-feature logistic model over historical margins by
// gradient descent. An empty dataset yields the identity-ish model that
// always answers 0.5.
func Train(dataset []Sample) Model {
	if len(dataset) == 0 {
		return Model{scale: 1}
	}

	scale := 0.0
	for _, s := range dataset {
		if abs := math.Abs(s.Margin); abs > scale {
			scale = abs
		}
	}
	if scale == 0 {
		scale = 1
	}

	var intercept, slope float64
	for iter := 0; iter < trainIterations; iter++ {
		var gradIntercept, gradSlope float64
		for _, s := range dataset {
			x := s.Margin / scale
			predicted := sigmoid(intercept + slope*x)
			target := 0.0
			if s.Won {
				target = 1.0
			}
			diff := predicted - target
			gradIntercept += diff
			gradSlope += diff * x
		}
		n := float64(len(dataset))
		intercept -= learningRate * gradIntercept / n
		slope -= learningRate * gradSlope / n
	}

	return Model{intercept: intercept, slope: slope, scale: scale}
}

// Apply maps a raw margin to a calibrated win probability in (0, 1).
func (m Model) Apply(rawMargin float64, ctx Context) float64 {
	scale := ctx.MarginScale
	if scale <= 0 {
		scale = m.scale
	}
	if scale <= 0 {
		scale = 1
	}
	return sigmoid(m.intercept + m.slope*(rawMargin/scale))
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
