package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// AlgorithmParameters contains algorithm-specific configuration
type AlgorithmParameters struct {
	Name       string
	Parameters map[string]interface{}
	Defaults   map[string]interface{}
	Ranges     map[string]ParameterRange
}

// ParameterRange defines valid range for a parameter
type ParameterRange struct {
	Min     interface{}
	Max     interface{}
	Options []interface{}
}

// ProcessingConfiguration holds the user-tunable scalars of every registered
// algorithm. Safe for concurrent use.
type ProcessingConfiguration struct {
	mu                  sync.RWMutex
	algorithmParameters map[string]AlgorithmParameters
}

func NewProcessingConfiguration() *ProcessingConfiguration {
	return &ProcessingConfiguration{
		algorithmParameters: make(map[string]AlgorithmParameters),
	}
}

// Register installs an algorithm's defaults and ranges. Registering the same
// name twice resets it to the new defaults.
func (pc *ProcessingConfiguration) Register(algorithm string, defaults map[string]interface{}, ranges map[string]ParameterRange) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	params := AlgorithmParameters{
		Name:       algorithm,
		Parameters: make(map[string]interface{}, len(defaults)),
		Defaults:   make(map[string]interface{}, len(defaults)),
		Ranges:     make(map[string]ParameterRange, len(ranges)),
	}
	for k, v := range defaults {
		params.Parameters[k] = v
		params.Defaults[k] = v
	}
	for k, v := range ranges {
		params.Ranges[k] = v
	}

	pc.algorithmParameters[algorithm] = params
}

// GetAlgorithmParameters returns a copy of the parameters for the algorithm
func (pc *ProcessingConfiguration) GetAlgorithmParameters(algorithm string) (AlgorithmParameters, error) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	params, exists := pc.algorithmParameters[algorithm]
	if !exists {
		return AlgorithmParameters{}, NewValidationError("algorithm", algorithm, "algorithm not found")
	}

	return copyAlgorithmParameters(params), nil
}

// SetAlgorithmParameter validates and stores a single parameter.
func (pc *ProcessingConfiguration) SetAlgorithmParameter(algorithm, paramName string, value interface{}) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	params, exists := pc.algorithmParameters[algorithm]
	if !exists {
		return NewValidationError("algorithm", algorithm, "algorithm not found")
	}

	def, known := params.Defaults[paramName]
	if !known {
		return NewValidationError(paramName, value, "unknown parameter for "+algorithm)
	}
	if fmt.Sprintf("%T", def) != fmt.Sprintf("%T", value) {
		return NewValidationError(paramName, value, fmt.Sprintf("expected %T", def))
	}

	if err := ValidateParameter(params.Ranges, paramName, value); err != nil {
		return err
	}

	params.Parameters[paramName] = value
	return nil
}

// GetAvailableAlgorithms returns the registered names in sorted order
func (pc *ProcessingConfiguration) GetAvailableAlgorithms() []string {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	algorithms := make([]string, 0, len(pc.algorithmParameters))
	for name := range pc.algorithmParameters {
		algorithms = append(algorithms, name)
	}
	sort.Strings(algorithms)

	return algorithms
}

// ResetAlgorithmToDefaults resets algorithm parameters to default values
func (pc *ProcessingConfiguration) ResetAlgorithmToDefaults(algorithm string) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	params, exists := pc.algorithmParameters[algorithm]
	if !exists {
		return NewValidationError("algorithm", algorithm, "algorithm not found")
	}

	for key, value := range params.Defaults {
		params.Parameters[key] = value
	}

	return nil
}

// ValidateParameters checks every entry of params that has a range.
func ValidateParameters(ranges map[string]ParameterRange, params map[string]interface{}) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ValidateParameter(ranges, name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateParameter checks if a parameter value is valid
func ValidateParameter(ranges map[string]ParameterRange, paramName string, value interface{}) error {
	paramRange, hasRange := ranges[paramName]
	if !hasRange {
		return nil
	}

	if len(paramRange.Options) > 0 {
		for _, option := range paramRange.Options {
			if value == option {
				return nil
			}
		}
		return NewValidationError(paramName, value, "value not in allowed options")
	}

	switch v := value.(type) {
	case int:
		if min, ok := paramRange.Min.(int); ok && v < min {
			return NewValidationError(paramName, value, fmt.Sprintf("must be between %d and %v", min, paramRange.Max))
		}
		if max, ok := paramRange.Max.(int); ok && v > max {
			return NewValidationError(paramName, value, fmt.Sprintf("must be between %v and %d", paramRange.Min, max))
		}
	case float64:
		if min, ok := paramRange.Min.(float64); ok && v < min {
			return NewValidationError(paramName, value, fmt.Sprintf("must be between %g and %v", min, paramRange.Max))
		}
		if max, ok := paramRange.Max.(float64); ok && v > max {
			return NewValidationError(paramName, value, fmt.Sprintf("must be between %v and %g", paramRange.Min, max))
		}
	}

	return nil
}

// ParseParameterValue converts a textual value (CLI, environment) to the
// dynamic type of the parameter's default.
func ParseParameterValue(defaultValue interface{}, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	switch defaultValue.(type) {
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", raw, err)
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", raw, err)
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q: %w", raw, err)
		}
		return v, nil
	case string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type %T", defaultValue)
	}
}

// copyAlgorithmParameters creates a deep copy of algorithm parameters
func copyAlgorithmParameters(src AlgorithmParameters) AlgorithmParameters {
	dst := AlgorithmParameters{
		Name:       src.Name,
		Parameters: make(map[string]interface{}, len(src.Parameters)),
		Defaults:   make(map[string]interface{}, len(src.Defaults)),
		Ranges:     make(map[string]ParameterRange, len(src.Ranges)),
	}

	for k, v := range src.Parameters {
		dst.Parameters[k] = v
	}
	for k, v := range src.Defaults {
		dst.Defaults[k] = v
	}
	for k, v := range src.Ranges {
		dst.Ranges[k] = v
	}

	return dst
}
