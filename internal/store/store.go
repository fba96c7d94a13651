package store

import (
	"sort"
	"sync"

	"github.com/dominikbraun/graph"
)

// StepStore is a graph store for pipeline steps. Steps are identified by their name.
// Vertices and edges are listed sorted by name so that drawings are reproducible.
type StepStore struct {
	lock             sync.RWMutex
	steps            map[string]struct{}
	vertexProperties map[string]*graph.VertexProperties

	// outEdges and inEdges index every link by its two step names.
	outEdges map[string]map[string]graph.Edge[string] // source -> target
	inEdges  map[string]map[string]graph.Edge[string] // target -> source
}

func NewStepStore() *StepStore {
	return &StepStore{
		steps:            make(map[string]struct{}),
		vertexProperties: make(map[string]*graph.VertexProperties),
		outEdges:         make(map[string]map[string]graph.Edge[string]),
		inEdges:          make(map[string]map[string]graph.Edge[string]),
	}
}

func (s *StepStore) AddVertex(name string, _ string, p graph.VertexProperties) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.steps[name]; ok {
		return graph.ErrVertexAlreadyExists
	}

	if p.Attributes == nil {
		p.Attributes = make(map[string]string)
	}
	s.steps[name] = struct{}{}
	s.vertexProperties[name] = &p

	return nil
}

func (s *StepStore) ListVertices() ([]string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	names := make([]string, 0, len(s.steps))
	for name := range s.steps {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (s *StepStore) VertexCount() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.steps), nil
}

// Vertex returns a copy of the step properties.
func (s *StepStore) Vertex(name string) (string, graph.VertexProperties, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, ok := s.steps[name]; !ok {
		return "", graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	p := s.vertexProperties[name]
	attributes := make(map[string]string, len(p.Attributes))
	for k, v := range p.Attributes {
		attributes[k] = v
	}

	return name, graph.VertexProperties{Attributes: attributes, Weight: p.Weight}, nil
}

func (s *StepStore) RemoveVertex(name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.steps[name]; !ok {
		return graph.ErrVertexNotFound
	}
	if len(s.inEdges[name]) > 0 || len(s.outEdges[name]) > 0 {
		return graph.ErrVertexHasEdges
	}

	delete(s.inEdges, name)
	delete(s.outEdges, name)
	delete(s.steps, name)
	delete(s.vertexProperties, name)

	return nil
}

// SetVertexAttribute sets one attribute of a step.
func (s *StepStore) SetVertexAttribute(name, key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	p, ok := s.vertexProperties[name]
	if !ok {
		return graph.ErrVertexNotFound
	}
	p.Attributes[key] = value

	return nil
}

func (s *StepStore) AddEdge(source, target string, edge graph.Edge[string]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.outEdges[source]; !ok {
		s.outEdges[source] = make(map[string]graph.Edge[string])
	}
	s.outEdges[source][target] = edge

	if _, ok := s.inEdges[target]; !ok {
		s.inEdges[target] = make(map[string]graph.Edge[string])
	}
	s.inEdges[target][source] = edge

	return nil
}

func (s *StepStore) UpdateEdge(source, target string, edge graph.Edge[string]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.outEdges[source][target]; !ok {
		return graph.ErrEdgeNotFound
	}

	s.outEdges[source][target] = edge
	s.inEdges[target][source] = edge

	return nil
}

func (s *StepStore) RemoveEdge(source, target string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.inEdges[target], source)
	delete(s.outEdges[source], target)

	return nil
}

func (s *StepStore) Edge(source, target string) (graph.Edge[string], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	edge, ok := s.outEdges[source][target]
	if !ok {
		return graph.Edge[string]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

// ListEdges returns the links sorted by source then target.
func (s *StepStore) ListEdges() ([]graph.Edge[string], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := make([]graph.Edge[string], 0)
	for _, edges := range s.outEdges {
		for _, edge := range edges {
			res = append(res, edge)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Source != res[j].Source {
			return res[i].Source < res[j].Source
		}

		return res[i].Target < res[j].Target
	})

	return res, nil
}

var _ graph.Store[string, string] = (*StepStore)(nil)
