/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func numericValues(in *Input) ([]float64, []int, map[string]any, error) {
	col := in.Columns[0]
	if err := requireType(in, col, dataset.TypeNumeric); err != nil {
		return nil, nil, nil, err
	}
	values, rows := col.Floats()
	details := map[string]any{
		DetailElementCount: col.Len(),
		DetailMissingCount: col.Len() - len(values),
	}
	return values, rows, details, nil
}

// resampledMeanSatisfy draws resamples bootstrap samples with a generator
// seeded from the seed parameter, so equal specs give equal results. The
// confidence interval is read off the sorted resampled means by nearest rank.
func resampledMeanSatisfy(in *Input) (Result, error) {
	values, _, details, err := numericValues(in)
	if err != nil {
		return Result{}, err
	}
	if len(values) == 0 {
		return insufficient(in.Spec, details), nil
	}

	p := in.Params
	rng := rand.New(rand.NewSource(int64(p.Int(expectation.ArgSeed))))
	means := make([]float64, p.Int(expectation.ArgResamples))
	for r := range means {
		sum := 0.0
		for range values {
			sum += values[rng.Intn(len(values))]
		}
		means[r] = sum / float64(len(values))
	}

	tail := (1 - p.Float(expectation.ArgConfidence)) / 2 * 100
	lo, err := stats.PercentileNearestRank(means, tail)
	if err != nil {
		return Result{}, fmt.Errorf("%s: lower confidence bound: %w", in.Spec.Kind(), err)
	}
	hi, err := stats.PercentileNearestRank(means, 100-tail)
	if err != nil {
		return Result{}, fmt.Errorf("%s: upper confidence bound: %w", in.Spec.Kind(), err)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in.Spec.Kind(), err)
	}

	details["sample_mean"] = observed(mean)
	details["confidence_interval"] = []any{observed(lo), observed(hi)}
	details[expectation.ArgResamples] = len(means)
	details[expectation.ArgSeed] = p.Int(expectation.ArgSeed)

	t := p.Float(expectation.ArgThreshold)
	res := Result{Details: details}
	switch op := p.String(expectation.ArgOperator); op {
	case ">":
		res.Success, res.ObservedValue = lo > t, observed(lo)
	case ">=":
		res.Success, res.ObservedValue = lo >= t, observed(lo)
	case "<":
		res.Success, res.ObservedValue = hi < t, observed(hi)
	case "<=":
		res.Success, res.ObservedValue = hi <= t, observed(hi)
	case "==":
		res.Success, res.ObservedValue = lo <= t && t <= hi, details["confidence_interval"]
	case "!=":
		res.Success, res.ObservedValue = t < lo || t > hi, details["confidence_interval"]
	default:
		return Result{}, &expectation.ConstraintError{
			Kind:   in.Spec.Kind(),
			Name:   expectation.ArgOperator,
			Reason: fmt.Sprintf("must be one of %v, got %q", expectation.Operators, op),
		}
	}
	return res, nil
}

// normallyDistributed runs a Jarque-Bera test. The statistic is compared to
// a chi-squared distribution with two degrees of freedom; the observed value
// is the p-value and the test passes when it is at least alpha.
func normallyDistributed(in *Input) (Result, error) {
	values, _, details, err := numericValues(in)
	if err != nil {
		return Result{}, err
	}
	if len(values) < 3 {
		return insufficient(in.Spec, details), nil
	}

	m2 := stat.Moment(2, values, nil)
	if m2 == 0 || math.IsNaN(m2) {
		return Result{}, &DegenerateDataError{Kind: in.Spec.Kind(), Column: in.Columns[0].Name, Reason: "values have zero variance"}
	}
	skew := stat.Moment(3, values, nil) / math.Pow(m2, 1.5)
	kurt := stat.Moment(4, values, nil) / (m2 * m2)
	n := float64(len(values))
	jb := n / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)
	pValue := distuv.ChiSquared{K: 2}.Survival(jb)

	details["statistic"] = observed(jb)
	details["skewness"] = observed(skew)
	details["kurtosis"] = observed(kurt)
	return Result{
		Success:       pValue >= in.Params.Float(expectation.ArgAlpha),
		ObservedValue: observed(pValue),
		Details:       details,
	}, nil
}

// zScoresLessThan standardizes with the sample standard deviation.
func zScoresLessThan(in *Input) (Result, error) {
	values, rows, _, err := numericValues(in)
	if err != nil {
		return Result{}, err
	}
	col := in.Columns[0]
	c := newRowCheck(col.Len())
	c.missing = col.Len() - len(values)
	if len(values) < 2 {
		return c.result(in), nil
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in.Spec.Kind(), err)
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in.Spec.Kind(), err)
	}
	if sd == 0 || math.IsNaN(sd) {
		return Result{}, &DegenerateDataError{Kind: in.Spec.Kind(), Column: col.Name, Reason: "values have zero variance"}
	}

	threshold := in.Params.Float(expectation.ArgThreshold)
	doubleSided := in.Params.Bool(expectation.ArgDoubleSided)
	for i, x := range values {
		z := (x - mean) / sd
		if doubleSided {
			z = math.Abs(z)
		}
		if z < threshold {
			c.pass()
		} else {
			c.fail(rows[i], col.Values[rows[i]])
		}
	}

	res := c.result(in)
	res.Details["mean"] = observed(mean)
	res.Details["stdev"] = observed(sd)
	return res, nil
}
