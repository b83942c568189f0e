package domain

// CollectionDump is the portable form of one collection
type CollectionDump struct {
	Name      string         `json:"name" yaml:"name"`
	Type      CollectionType `json:"type" yaml:"type"`
	Documents []Document     `json:"documents" yaml:"documents"`
}

// Dataset is a portable snapshot of several collections. Documents keep their
// _key, and edges their _from/_to, so a dataset round-trips between stores.
type Dataset struct {
	Collections []CollectionDump `json:"collections" yaml:"collections"`
}

// Collection returns the dump for name, or nil
func (d *Dataset) Collection(name string) *CollectionDump {
	for i := range d.Collections {
		if d.Collections[i].Name == name {
			return &d.Collections[i]
		}
	}
	return nil
}

// DocumentCount returns the number of documents across all collections
func (d *Dataset) DocumentCount() int {
	n := 0
	for _, c := range d.Collections {
		n += len(c.Documents)
	}
	return n
}
