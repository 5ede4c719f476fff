package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DistrictMatch is a district whose name matched a search.
type DistrictMatch struct {
	State    string `json:"state"`
	District string `json:"district"`
}

// SubDistrictMatch is a sub-district whose name matched a search.
type SubDistrictMatch struct {
	State       string `json:"state"`
	District    string `json:"district"`
	SubDistrict string `json:"subDistrict"`
}

// VillageMatch is a village whose name matched a search.
type VillageMatch struct {
	State       string `json:"state"`
	District    string `json:"district"`
	SubDistrict string `json:"subDistrict"`
	Village     string `json:"village"`
}

// Result holds search matches per level, each in catalog traversal order.
// All four slices are non-nil.
type Result struct {
	States       []string           `json:"states"`
	Districts    []DistrictMatch    `json:"districts"`
	SubDistricts []SubDistrictMatch `json:"subDistricts"`
	Villages     []VillageMatch     `json:"villages"`
}

// Search returns every name at every level whose lowercase form contains the
// lowercase form of q. Each name is tested on its own, so a village can match
// even when none of its ancestors do.
func (s *Service) Search(q string) (*Result, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrInvalidQuery
	}

	// A Caser carries state and is not safe to share between calls.
	lower := cases.Lower(language.Und)
	needle := lower.String(q)
	match := func(name string) bool {
		return strings.Contains(lower.String(name), needle)
	}

	res := &Result{
		States:       []string{},
		Districts:    []DistrictMatch{},
		SubDistricts: []SubDistrictMatch{},
		Villages:     []VillageMatch{},
	}

	for _, st := range s.cat.States() {
		if match(st.Name) {
			res.States = append(res.States, st.Name)
		}
		for _, d := range st.Districts {
			if match(d.Name) {
				res.Districts = append(res.Districts, DistrictMatch{State: st.Name, District: d.Name})
			}
			for _, sd := range d.SubDistricts {
				if match(sd.Name) {
					res.SubDistricts = append(res.SubDistricts, SubDistrictMatch{
						State:       st.Name,
						District:    d.Name,
						SubDistrict: sd.Name,
					})
				}
				for _, v := range sd.Villages {
					if match(v) {
						res.Villages = append(res.Villages, VillageMatch{
							State:       st.Name,
							District:    d.Name,
							SubDistrict: sd.Name,
							Village:     v,
						})
					}
				}
			}
		}
	}

	return res, nil
}
