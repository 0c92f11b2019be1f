package wizard

import "testing"

func TestValidRack(t *testing.T) {
	cases := []struct {
		zone  string
		booth int
		want  bool
	}{
		{"C", 3, true},
		{"C", 7, true},
		{"C", 2, false},
		{"C", 8, false},
		{"D", 1, true},
		{"D", 10, true},
		{"E", 12, true},
		{"E", 21, true},
		{"E", 11, false},
		{"F", 28, true},
		{"F", 51, true},
		{"G", 57, true},
		{"G", 80, true},
		{"G", 56, false},
		{"G", 81, false},
		{"H", 86, true},
		{"H", 109, true},
		{"H", 110, false},
		{"Z", 1, false},
	}
	for _, c := range cases {
		if got := ValidRack(c.zone, c.booth); got != c.want {
			t.Errorf("ValidRack(%s, %d) = %v, want %v", c.zone, c.booth, got, c.want)
		}
	}
}

func TestRackID(t *testing.T) {
	if got := RackID("E", 15); got != "E15" {
		t.Fatalf("RackID = %s, want E15", got)
	}
	if got := RackID("H", 109); got != "H109" {
		t.Fatalf("RackID = %s, want H109", got)
	}
}

func TestBoothNumbers(t *testing.T) {
	g := BoothNumbers("G")
	if len(g) != 24 || g[0] != 57 || g[23] != 80 {
		t.Fatalf("G booths = %v", g)
	}
	if BoothNumbers("Z") != nil {
		t.Fatal("unknown zone must yield no booths")
	}
}

func TestPrinterNumbersPools(t *testing.T) {
	brother, err := PrinterNumbers(PrinterBrother)
	if err != nil || len(brother) != BrotherPoolSize {
		t.Fatalf("brother pool = %d (%v), want %d", len(brother), err, BrotherPoolSize)
	}
	godex, err := PrinterNumbers(PrinterGodex)
	if err != nil || len(godex) != GodexPoolSize {
		t.Fatalf("godex pool = %d (%v), want %d", len(godex), err, GodexPoolSize)
	}
	if _, err := PrinterNumbers(PrinterNone); err == nil {
		t.Fatal("no pool exists for \"none\"")
	}
}

func TestEventZoneRestriction(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeSingle)
	id := int64(5)
	s.SelectEvent(&id)
	s.RestrictZones([]string{"E", "G", "Q"}) // Q is not a real zone

	offered := s.OfferedZones()
	if len(offered) != 2 || offered[0] != "E" || offered[1] != "G" {
		t.Fatalf("offered = %v, want [E G]", offered)
	}

	if err := s.SelectZone("D"); err == nil {
		t.Fatal("zone outside the event's list must be refused")
	}
	if err := s.SelectZone("G"); err != nil {
		t.Fatalf("SelectZone(G): %v", err)
	}
}

func TestNoEventOffersEveryZone(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)
	if got := s.OfferedZones(); len(got) != len(Zones) {
		t.Fatalf("offered = %v, want all zones", got)
	}
}
