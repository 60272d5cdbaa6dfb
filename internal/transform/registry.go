package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("delay_application", createDelayApplication)
	registry.Register("adjust_appreciation", createAdjustAppreciation)
	registry.Register("set_appreciation", createSetAppreciation)
	registry.Register("set_expected_rate", createSetExpectedRate)
	registry.Register("change_monthly_payment", createChangeMonthlyPayment)
	registry.Register("set_monthly_payment", createSetMonthlyPayment)
	registry.Register("pay_off_mortgage", func(map[string]string) (ScenarioTransform, error) { return &PayOffMortgage{}, nil })
	registry.Register("single_borrower", func(map[string]string) (ScenarioTransform, error) { return &SingleBorrower{}, nil })

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2" (the colon is optional
// for transforms without parameters).
// Example: "delay_application:years=3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec, missing name: %q", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		for _, paramPair := range strings.Split(parts[1], ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createDelayApplication(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("delay_application requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &DelayApplication{Years: years}, nil
}

func createAdjustAppreciation(params map[string]string) (ScenarioTransform, error) {
	delta, err := decimalParam(params, "adjust_appreciation", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustAppreciation{DeltaPercent: delta}, nil
}

func createSetAppreciation(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam(params, "set_appreciation", "rate")
	if err != nil {
		return nil, err
	}
	return &SetAppreciation{RatePercent: rate}, nil
}

func createSetExpectedRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam(params, "set_expected_rate", "rate")
	if err != nil {
		return nil, err
	}
	return &SetExpectedRate{RatePercent: rate}, nil
}

func createChangeMonthlyPayment(params map[string]string) (ScenarioTransform, error) {
	delta, err := decimalParam(params, "change_monthly_payment", "delta")
	if err != nil {
		return nil, err
	}
	return &ChangeMonthlyPayment{Delta: delta}, nil
}

func createSetMonthlyPayment(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "set_monthly_payment", "amount")
	if err != nil {
		return nil, err
	}
	return &SetMonthlyPayment{Amount: amount}, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}
