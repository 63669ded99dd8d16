package algorithms

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"skeleton-workbench/internal/algorithms/convolution"
	"skeleton-workbench/internal/algorithms/equalization"
	"skeleton-workbench/internal/algorithms/localbin"
	"skeleton-workbench/internal/algorithms/median"
	"skeleton-workbench/internal/algorithms/otsu"
	"skeleton-workbench/internal/algorithms/pixelization"
	"skeleton-workbench/internal/algorithms/stretching"
	"skeleton-workbench/internal/algorithms/threshold"
	"skeleton-workbench/internal/models"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

type Manager struct {
	algorithms map[string]Algorithm
	order      []string
	config     *models.ProcessingConfiguration
	mu         sync.RWMutex
}

func NewManager() *Manager {
	manager := &Manager{
		algorithms: make(map[string]Algorithm),
		config:     models.NewProcessingConfiguration(),
	}

	manager.registerAlgorithms()

	return manager
}

func (m *Manager) registerAlgorithms() {
	m.register(threshold.NewProcessor())
	m.register(otsu.NewProcessor())
	m.register(stretching.NewProcessor())
	m.register(equalization.NewProcessor())
	m.register(localbin.NewProcessor())
	m.register(convolution.NewProcessor())
	m.register(median.NewProcessor())
	m.register(pixelization.NewProcessor())
}

func (m *Manager) register(algorithm Algorithm) {
	name := algorithm.GetName()
	m.algorithms[name] = algorithm
	m.order = append(m.order, name)
	m.config.Register(name, algorithm.GetDefaultParameters(), algorithm.GetParameterRanges())
}

// GetParameters returns a copy of the algorithm's current parameters, or an
// empty map for an unknown name.
func (m *Manager) GetParameters(algorithm string) map[string]interface{} {
	params, err := m.config.GetAlgorithmParameters(algorithm)
	if err != nil {
		return make(map[string]interface{})
	}
	return params.Parameters
}

// SetParameter validates value against the algorithm's registered type and
// range, stores it, and applies it to the descriptor.
func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, exists := m.algorithms[algorithm]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	if err := m.config.SetAlgorithmParameter(algorithm, name, value); err != nil {
		return fmt.Errorf("%s: %w", algorithm, err)
	}

	return alg.ApplyParameters(map[string]interface{}{name: value})
}

// SetParameterString parses raw to the parameter's type before SetParameter.
func (m *Manager) SetParameterString(algorithm, name, raw string) error {
	params, err := m.config.GetAlgorithmParameters(algorithm)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	def, known := params.Defaults[name]
	if !known {
		return fmt.Errorf("%s: %w", algorithm, models.NewValidationError(name, raw, "unknown parameter for "+algorithm))
	}

	value, err := models.ParseParameterValue(def, raw)
	if err != nil {
		return fmt.Errorf("%s: parameter %s: %w", algorithm, name, err)
	}

	return m.SetParameter(algorithm, name, value)
}

// ResetParameters restores the defaults in both the configuration and the
// descriptor.
func (m *Manager) ResetParameters(algorithm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, exists := m.algorithms[algorithm]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	if err := m.config.ResetAlgorithmToDefaults(algorithm); err != nil {
		return err
	}
	return alg.ApplyParameters(alg.GetDefaultParameters())
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
}

// GetAvailableAlgorithms returns the names in registration order.
func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}

// HistogramAlgorithms returns the names of the algorithms prepared from a
// histogram.
func (m *Manager) HistogramAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return lo.Filter(m.order, func(name string, _ int) bool {
		_, ok := m.algorithms[name].(HistogramPreparer)
		return ok
	})
}

// ImageAlgorithms returns the names of the algorithms prepared from the
// pixel buffer.
func (m *Manager) ImageAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return lo.Filter(m.order, func(name string, _ int) bool {
		_, ok := m.algorithms[name].(ImagePreparer)
		return ok
	})
}
