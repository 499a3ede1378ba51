package scenario

import (
	"fmt"
	"sort"
)

// Builder constructs a fresh scenario instance. Instances are not
// reusable across runs: tasks and simulated robots carry state.
type Builder func(p Params) (*Scenario, error)

type Registry struct {
	builders     map[string]Builder
	descriptions map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		builders:     make(map[string]Builder),
		descriptions: make(map[string]string),
	}

	r.add("point", "single image point against a free-flying camera", buildPoint)
	r.add("ibvs4", "four coplanar points, the classic image-based square", buildIBVS4)
	r.add("pbvs", "position-based servo on translation and theta-u", buildPBVS)
	r.add("pose", "single stacked 6-d pose feature", buildPose)
	r.add("hybrid", "2.5-d servo mixing image point, log depth ratio and theta-u", buildHybrid)

	return r
}

func (r *Registry) add(name, description string, b Builder) {
	r.builders[name] = b
	r.descriptions[name] = description
}

func (r *Registry) Get(name string, p Params) (*Scenario, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	if err := validate(p); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	s, err := b(p)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	s.Name = name
	s.Description = r.descriptions[name]
	return s, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Describe(name string) string {
	return r.descriptions[name]
}
