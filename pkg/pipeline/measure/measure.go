package measure

import (
	"sort"
	"sync"
)

// DefaultMeasure keeps the metrics in memory.
type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

// AddMetric registers a step. Registering the same name again returns the existing metric.
func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mt, ok := m.steps[name]; ok {
		return mt
	}
	if concurrent < 1 {
		concurrent = 1
	}
	mt := &DefaultMetric{
		transports: make(map[string]*transport),
		concurrent: concurrent,
	}
	m.steps[name] = mt

	return mt
}

// GetMetric returns the metric of a step, or nil when the step is unknown.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mt, ok := m.steps[name]
	if !ok {
		return nil
	}

	return mt
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		all[name] = mt
	}

	return all
}

// StepNames returns the names of the measured steps, sorted.
func (m *DefaultMeasure) StepNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.steps))
	for name := range m.steps {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

var _ Measure = (*DefaultMeasure)(nil)
