package manifest

import (
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0"?>
<tablebases>
  <info>
    <name>three-piece endings</name>
    <description>queen and promoting pawn</description>
  </info>
  <table pieces="WP"/>
  <table pieces="WQ"/>
  <table pieces="WR"/>
</tablebases>`

func TestParseXML(t *testing.T) {
	m, err := ParseXML(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("ParseXML failed: %v", err)
	}
	if m.Name != "three-piece endings" {
		t.Errorf("name = %q", m.Name)
	}
	if len(m.Tables) != 3 {
		t.Fatalf("got %d tables, expected 3", len(m.Tables))
	}
	if m.Tables[0] != "WP" || m.Tables[1] != "WQ" {
		t.Errorf("tables = %v", m.Tables)
	}
}

func TestParseXMLRejectsEmpty(t *testing.T) {
	empty := `<tablebases><info><name>x</name></info></tablebases>`
	if _, err := ParseXML(strings.NewReader(empty)); err == nil {
		t.Error("empty manifest should fail")
	}

	noPieces := `<tablebases><table/></tablebases>`
	if _, err := ParseXML(strings.NewReader(noPieces)); err == nil {
		t.Error("entry without pieces should fail")
	}
}

func TestBuildOrder(t *testing.T) {
	m, err := ParseXML(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	order, err := m.BuildOrder()
	if err != nil {
		t.Fatalf("BuildOrder failed: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("got %d specs, expected 3", len(order))
	}

	idx := map[string]int{}
	for i, spec := range order {
		idx[spec.ID()] = i
	}
	// The queen table must be built before the pawn table that
	// promotes into it.
	if idx["WQ"] > idx["WP"] {
		t.Errorf("WQ built at %d, after WP at %d", idx["WQ"], idx["WP"])
	}
}

func TestBuildOrderMissingCompanion(t *testing.T) {
	m := &Manifest{Tables: []string{"WP"}}
	if _, err := m.BuildOrder(); err == nil {
		t.Error("pawn set without its companion should fail")
	}
}

func TestBuildOrderDuplicate(t *testing.T) {
	m := &Manifest{Tables: []string{"WQ", "WQ"}}
	if _, err := m.BuildOrder(); err == nil {
		t.Error("duplicate entry should fail")
	}
}
