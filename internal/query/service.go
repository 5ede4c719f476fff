// Package query answers directory lookups and searches over a built catalog.
package query

import (
	"slices"

	"github.com/sells-group/geodir/internal/catalog"
)

// Service runs read-only queries against a catalog. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	cat *catalog.Catalog
}

// NewService returns a Service over cat.
func NewService(cat *catalog.Catalog) *Service {
	return &Service{cat: cat}
}

// Stats returns entity counts for the underlying catalog.
func (s *Service) Stats() catalog.Stats {
	return s.cat.Stats()
}

// ListStates returns every state name in catalog order.
func (s *Service) ListStates() []string {
	return s.cat.StateNames()
}

// ListDistricts returns the district names of state in source order.
func (s *Service) ListDistricts(state string) ([]string, error) {
	st, ok := s.cat.State(state)
	if !ok {
		return nil, notFound(LevelState, state)
	}
	return st.DistrictNames(), nil
}

// ListSubDistricts returns the sub-district names of the first district named
// district within state.
func (s *Service) ListSubDistricts(state, district string) ([]string, error) {
	d, err := s.district(state, district)
	if err != nil {
		return nil, err
	}
	return d.SubDistrictNames(), nil
}

// ListVillages returns the villages of the first matching sub-district. Missing
// levels are reported outermost first.
func (s *Service) ListVillages(state, district, subDistrict string) ([]string, error) {
	d, err := s.district(state, district)
	if err != nil {
		return nil, err
	}
	sd, ok := d.SubDistrict(subDistrict)
	if !ok {
		return nil, notFound(LevelSubDistrict, subDistrict)
	}
	villages := slices.Clone(sd.Villages)
	if villages == nil {
		villages = []string{}
	}
	return villages, nil
}

func (s *Service) district(state, district string) (catalog.District, error) {
	st, ok := s.cat.State(state)
	if !ok {
		return catalog.District{}, notFound(LevelState, state)
	}
	d, ok := st.District(district)
	if !ok {
		return catalog.District{}, notFound(LevelDistrict, district)
	}
	return d, nil
}
