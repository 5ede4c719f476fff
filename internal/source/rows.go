package source

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/geodir/internal/catalog"
)

// rowAssembler groups flat (state, district, sub-district, village) rows into
// the hierarchy. Names are grouped in first-appearance order. An empty village
// marks a sub-district with no villages.
type rowAssembler struct {
	order  []string
	states map[string]*stateBuilder
}

type stateBuilder struct {
	state     catalog.State
	districts map[string]int
	subs      map[int]map[string]int
	err       error
}

func newRowAssembler() *rowAssembler {
	return &rowAssembler{states: make(map[string]*stateBuilder)}
}

func (a *rowAssembler) add(state, district, subDistrict, village string) {
	sb, ok := a.states[state]
	if !ok {
		sb = &stateBuilder{
			state:     catalog.State{Name: state, Districts: []catalog.District{}},
			districts: make(map[string]int),
			subs:      make(map[int]map[string]int),
		}
		a.states[state] = sb
		a.order = append(a.order, state)
	}
	if sb.err != nil {
		return
	}

	switch {
	case state == "":
		sb.err = eris.New("source: row has no state name")
		return
	case district == "":
		sb.err = eris.New("source: row has no district name")
		return
	case subDistrict == "":
		sb.err = eris.Errorf("source: district %q: row has no sub-district name", district)
		return
	}

	di, ok := sb.districts[district]
	if !ok {
		di = len(sb.state.Districts)
		sb.districts[district] = di
		sb.subs[di] = make(map[string]int)
		sb.state.Districts = append(sb.state.Districts, catalog.District{
			Name:         district,
			SubDistricts: []catalog.SubDistrict{},
		})
	}
	d := &sb.state.Districts[di]

	si, ok := sb.subs[di][subDistrict]
	if !ok {
		si = len(d.SubDistricts)
		sb.subs[di][subDistrict] = si
		d.SubDistricts = append(d.SubDistricts, catalog.SubDistrict{Name: subDistrict, Villages: []string{}})
	}
	if village != "" {
		d.SubDistricts[si].Villages = append(d.SubDistricts[si].Villages, village)
	}
}

func (a *rowAssembler) result() *Result {
	res := &Result{States: make([]catalog.State, 0, len(a.order))}
	for _, name := range a.order {
		sb := a.states[name]
		if sb.err != nil {
			res.Failures = append(res.Failures, LoadFailure{State: name, Err: sb.err})
			continue
		}
		res.States = append(res.States, sb.state)
	}
	return res
}
