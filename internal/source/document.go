package source

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/geodir/internal/catalog"
)

// document is the on-disk shape of one state:
//
//	{"districts":[{"district":"Patna","subDistricts":[{"subDistrict":"Patna Sadar","villages":["Danapur"]}]}]}
type document struct {
	Districts *[]districtDoc `json:"districts" yaml:"districts"`
}

type districtDoc struct {
	District     *string          `json:"district" yaml:"district"`
	SubDistricts []subDistrictDoc `json:"subDistricts" yaml:"subDistricts"`
}

type subDistrictDoc struct {
	SubDistrict *string     `json:"subDistrict" yaml:"subDistrict"`
	Villages    villageList `json:"villages" yaml:"villages"`
}

// villageList decodes a villages array and records the first entry that is
// not a string, so null and non-string scalars surface as load failures.
type villageList struct {
	names   []string
	invalid bool
	at      int
}

func (l *villageList) markInvalid(i int) {
	if !l.invalid {
		l.invalid, l.at = true, i
	}
}

func (l *villageList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "source: decode villages")
	}
	if raw == nil {
		return nil
	}
	l.names = make([]string, 0, len(raw))
	for i, r := range raw {
		var name *string
		if err := json.Unmarshal(r, &name); err != nil || name == nil {
			l.markInvalid(i)
			continue
		}
		l.names = append(l.names, *name)
	}
	return nil
}

func (l *villageList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return eris.Errorf("source: villages must be a list (line %d)", node.Line)
	}
	l.names = make([]string, 0, len(node.Content))
	for i, n := range node.Content {
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
			l.markInvalid(i)
			continue
		}
		l.names = append(l.names, n.Value)
	}
	return nil
}

// Format selects the decoder for a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// ParseDocument decodes and validates a single state document.
func ParseDocument(name string, data []byte, format Format) (catalog.State, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return catalog.State{}, eris.Wrap(err, "source: decode yaml")
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return catalog.State{}, eris.Wrap(err, "source: decode json")
		}
	}
	return doc.toState(name)
}

func (doc document) toState(name string) (catalog.State, error) {
	if doc.Districts == nil {
		return catalog.State{}, eris.New("source: missing districts")
	}

	st := catalog.State{Name: name, Districts: make([]catalog.District, 0, len(*doc.Districts))}
	for i, d := range *doc.Districts {
		if d.District == nil || *d.District == "" {
			return catalog.State{}, eris.Errorf("source: district %d has no name", i)
		}
		district := catalog.District{
			Name:         *d.District,
			SubDistricts: make([]catalog.SubDistrict, 0, len(d.SubDistricts)),
		}
		for j, sd := range d.SubDistricts {
			if sd.SubDistrict == nil || *sd.SubDistrict == "" {
				return catalog.State{}, eris.Errorf("source: district %q: sub-district %d has no name", district.Name, j)
			}
			if sd.Villages.invalid {
				return catalog.State{}, eris.Errorf("source: district %q: sub-district %q: village %d is not a string",
					district.Name, *sd.SubDistrict, sd.Villages.at)
			}
			villages := sd.Villages.names
			if villages == nil {
				villages = []string{}
			}
			district.SubDistricts = append(district.SubDistricts, catalog.SubDistrict{
				Name:     *sd.SubDistrict,
				Villages: villages,
			})
		}
		st.Districts = append(st.Districts, district)
	}
	return st, nil
}
