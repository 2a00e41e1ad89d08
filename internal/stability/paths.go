package stability

import (
	"bytes"
	"iter"

	"github.com/goccy/go-json"
)

// Paths maps path names to their analysis, iterating in first-seen order
type Paths struct {
	names  []string
	byName map[string]*PathAnalysis
}

// NewPaths creates an empty ordered path mapping
func NewPaths() *Paths {
	return &Paths{byName: make(map[string]*PathAnalysis)}
}

// Get returns the analysis for a path name
func (p *Paths) Get(name string) (*PathAnalysis, bool) {
	if p == nil {
		return nil, false
	}
	pa, ok := p.byName[name]
	return pa, ok
}

// Len returns the number of distinct paths
func (p *Paths) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Names returns the path names in first-seen order
func (p *Paths) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// All iterates over the paths in first-seen order
func (p *Paths) All() iter.Seq2[string, *PathAnalysis] {
	return func(yield func(string, *PathAnalysis) bool) {
		if p == nil {
			return
		}
		for _, name := range p.names {
			if !yield(name, p.byName[name]) {
				return
			}
		}
	}
}

// getOrCreate returns the analysis for name, creating it on first sighting
func (p *Paths) getOrCreate(name string) *PathAnalysis {
	if pa, ok := p.byName[name]; ok {
		return pa
	}
	pa := &PathAnalysis{BytesHistory: []int64{}}
	p.byName[name] = pa
	p.names = append(p.names, name)
	return pa
}

// MarshalJSON encodes the mapping as a JSON object keeping first-seen order
func (p *Paths) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
