package l2_service

import (
	"fmt"
	"math"

	"github.com/maja42/goval"
)

// ScoringVariables lists the normalized metric names a custom scoring
// expression may reference. Each resolves to a value in [0, 1] for the
// month being ranked.
var ScoringVariables = []string{
	"fund_net_buying",
	"number_fund_holdings",
	"net_fund_change",
	"roe",
	"revenue_growth",
	"debt_to_equity",
	"cash_ratio",
	"pe_score",
}

// ValidateScoringExpression evaluates the expression against neutral
// inputs so malformed or non-numeric expressions are rejected before a
// ranking run picks them up.
func ValidateScoringExpression(expression string) error {
	neutral := make(map[string]float64, len(ScoringVariables))
	for _, name := range ScoringVariables {
		neutral[name] = 0.5
	}
	_, err := EvaluateScoringExpression(expression, neutral)
	return err
}

// EvaluateScoringExpression computes the expression over one stock's
// normalized metrics. NaN and infinite results are errors.
func EvaluateScoringExpression(expression string, metrics map[string]float64) (float64, error) {
	eval := goval.NewEvaluator()
	variables := make(map[string]interface{}, len(metrics))
	for name, value := range metrics {
		variables[name] = value
	}

	result, err := eval.Evaluate(expression, variables, scoringFunctions())
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate scoring expression: %w", err)
	}

	r, ok := toFloat(result)
	if !ok {
		return 0, fmt.Errorf("failed to convert to float")
	} else if math.IsNaN(r) {
		return 0, fmt.Errorf("calculated NaN as expression result")
	} else if math.IsInf(r, 0) {
		return 0, fmt.Errorf("calculated infinity as expression result")
	}

	return r, nil
}

func scoringFunctions() map[string]goval.ExpressionFunction {
	return map[string]goval.ExpressionFunction{
		"min": func(args ...interface{}) (interface{}, error) {
			a, b, err := twoFloatArgs("min", args)
			if err != nil {
				return 0, err
			}
			return math.Min(a, b), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			a, b, err := twoFloatArgs("max", args)
			if err != nil {
				return 0, err
			}
			return math.Max(a, b), nil
		},
	}
}

func twoFloatArgs(name string, args []interface{}) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s needs 2 args, got %d", name, len(args))
	}
	a, ok := toFloat(args[0])
	if !ok {
		return 0, 0, fmt.Errorf("%s arg 1 is not numeric", name)
	}
	b, ok := toFloat(args[1])
	if !ok {
		return 0, 0, fmt.Errorf("%s arg 2 is not numeric", name)
	}
	return a, b, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}
