// Package catalog holds the in-memory state → district → sub-district → village
// directory. A Catalog is built once by New and never modified afterwards, so it
// can be shared by any number of goroutines without locking.
package catalog

import "slices"

// SubDistrict is a named group of villages within a district.
type SubDistrict struct {
	Name     string   `json:"subDistrict" yaml:"subDistrict"`
	Villages []string `json:"villages" yaml:"villages"`
}

// District is a named group of sub-districts within a state.
type District struct {
	Name         string        `json:"district" yaml:"district"`
	SubDistricts []SubDistrict `json:"subDistricts" yaml:"subDistricts"`
}

// State is the top level of the hierarchy.
type State struct {
	Name      string     `json:"state" yaml:"state"`
	Districts []District `json:"districts" yaml:"districts"`
}

// Stats counts the entities at each level of a catalog.
type Stats struct {
	States       int `json:"states"`
	Districts    int `json:"districts"`
	SubDistricts int `json:"subDistricts"`
	Villages     int `json:"villages"`
}

// Catalog is an immutable, ordered set of states keyed by name.
type Catalog struct {
	states []State
	index  map[string]int
}

// New builds a catalog from states in the given order. The input is deep-copied.
// State names must be unique: the first occurrence wins and the names of any
// ignored duplicates are returned so the caller can report them.
func New(states []State) (*Catalog, []string) {
	c := &Catalog{
		states: make([]State, 0, len(states)),
		index:  make(map[string]int, len(states)),
	}
	var dups []string
	for _, s := range states {
		if _, ok := c.index[s.Name]; ok {
			dups = append(dups, s.Name)
			continue
		}
		c.index[s.Name] = len(c.states)
		c.states = append(c.states, cloneState(s))
	}
	return c, dups
}

// Len returns the number of states.
func (c *Catalog) Len() int {
	return len(c.states)
}

// States returns the states in catalog order. The returned slice is a copy, but
// the states it holds share storage with the catalog and must not be modified.
func (c *Catalog) States() []State {
	return slices.Clone(c.states)
}

// StateNames returns state names in catalog order. Never nil.
func (c *Catalog) StateNames() []string {
	names := make([]string, 0, len(c.states))
	for _, s := range c.states {
		names = append(names, s.Name)
	}
	return names
}

// State looks up a state by exact name.
func (c *Catalog) State(name string) (State, bool) {
	i, ok := c.index[name]
	if !ok {
		return State{}, false
	}
	return c.states[i], true
}

// District returns the first district in s named name.
func (s State) District(name string) (District, bool) {
	for _, d := range s.Districts {
		if d.Name == name {
			return d, true
		}
	}
	return District{}, false
}

// DistrictNames returns district names in source order. Never nil.
func (s State) DistrictNames() []string {
	names := make([]string, 0, len(s.Districts))
	for _, d := range s.Districts {
		names = append(names, d.Name)
	}
	return names
}

// SubDistrict returns the first sub-district in d named name.
func (d District) SubDistrict(name string) (SubDistrict, bool) {
	for _, sd := range d.SubDistricts {
		if sd.Name == name {
			return sd, true
		}
	}
	return SubDistrict{}, false
}

// SubDistrictNames returns sub-district names in source order. Never nil.
func (d District) SubDistrictNames() []string {
	names := make([]string, 0, len(d.SubDistricts))
	for _, sd := range d.SubDistricts {
		names = append(names, sd.Name)
	}
	return names
}

// Stats counts every entity in the catalog.
func (c *Catalog) Stats() Stats {
	st := Stats{States: len(c.states)}
	for _, s := range c.states {
		st.Districts += len(s.Districts)
		for _, d := range s.Districts {
			st.SubDistricts += len(d.SubDistricts)
			for _, sd := range d.SubDistricts {
				st.Villages += len(sd.Villages)
			}
		}
	}
	return st
}

func cloneState(s State) State {
	out := State{Name: s.Name, Districts: make([]District, len(s.Districts))}
	for i, d := range s.Districts {
		nd := District{Name: d.Name, SubDistricts: make([]SubDistrict, len(d.SubDistricts))}
		for j, sd := range d.SubDistricts {
			villages := make([]string, len(sd.Villages))
			copy(villages, sd.Villages)
			nd.SubDistricts[j] = SubDistrict{Name: sd.Name, Villages: villages}
		}
		out.Districts[i] = nd
	}
	return out
}
