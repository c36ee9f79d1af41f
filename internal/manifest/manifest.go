// Package manifest loads build manifests describing which tablebases
// to construct. Piece sets that can promote depend on the promoted
// set; the manifest resolves a dependency-respecting build order.
package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/egtb/internal/position"
)

// Manifest lists the piece sets to build.
type Manifest struct {
	Name        string
	Description string
	Tables      []string // table IDs in manifest order
}

// XML parsing structures
type xmlManifest struct {
	XMLName xml.Name   `xml:"tablebases"`
	Info    xmlInfo    `xml:"info"`
	Tables  []xmlTable `xml:"table"`
}

type xmlInfo struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
}

type xmlTable struct {
	Pieces string `xml:"pieces,attr"`
}

// LoadXML loads a build manifest from an XML file.
func LoadXML(filename string) (*Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	return ParseXML(f)
}

// ParseXML parses a build manifest from XML.
func ParseXML(r io.Reader) (*Manifest, error) {
	var doc xmlManifest
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest XML: %w", err)
	}

	m := &Manifest{
		Name:        doc.Info.Name,
		Description: doc.Info.Description,
	}
	for _, t := range doc.Tables {
		if t.Pieces == "" {
			return nil, fmt.Errorf("manifest table entry without pieces attribute")
		}
		m.Tables = append(m.Tables, t.Pieces)
	}
	if len(m.Tables) == 0 {
		return nil, fmt.Errorf("manifest lists no tables")
	}
	return m, nil
}

// BuildOrder resolves the manifest into specs ordered so that every
// promoted companion is built before a set that can promote into it.
// A set with a pawn whose companion is missing from the manifest is a
// configuration error.
func (m *Manifest) BuildOrder() ([]*position.Spec, error) {
	specs := make(map[string]*position.Spec, len(m.Tables))
	for _, id := range m.Tables {
		spec, err := position.ParseID(id)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %q: %w", id, err)
		}
		if _, dup := specs[spec.ID()]; dup {
			return nil, fmt.Errorf("manifest lists %q twice", spec.ID())
		}
		specs[spec.ID()] = spec
	}

	var order []*position.Spec
	done := make(map[string]bool, len(specs))
	var visit func(spec *position.Spec) error
	visit = func(spec *position.Spec) error {
		if done[spec.ID()] {
			return nil
		}
		done[spec.ID()] = true
		for _, c := range []position.Color{position.White, position.Black} {
			promoted, ok := spec.Promoted(c)
			if !ok {
				continue
			}
			dep, listed := specs[promoted.ID()]
			if !listed {
				return fmt.Errorf("table %s needs companion %s, not in manifest",
					spec.ID(), promoted.ID())
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		order = append(order, spec)
		return nil
	}

	for _, id := range m.Tables {
		spec, err := position.ParseID(id)
		if err != nil {
			return nil, err
		}
		if err := visit(specs[spec.ID()]); err != nil {
			return nil, err
		}
	}
	return order, nil
}
