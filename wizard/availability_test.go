package wizard

import (
	"testing"

	"expotrack/backend"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func inst(rack string, laptop int, pt string, pn int, spt string, spn int) backend.Installation {
	i := backend.Installation{Rack: rack, Laptop: laptop}
	if pt != "" {
		i.PrinterType = strp(pt)
		i.PrinterNumber = intp(pn)
	}
	if spt != "" {
		i.SecondPrinterType = strp(spt)
		i.SecondPrinterNumber = intp(spn)
	}
	return i
}

func TestOccupiedRacks(t *testing.T) {
	installs := []backend.Installation{
		inst("E12", 1, "", 0, "", 0),
		inst("G60", 2, "", 0, "", 0),
	}
	occupied := OccupiedRacks(installs)
	if !occupied["E12"] || !occupied["G60"] {
		t.Fatalf("occupied = %v, want E12 and G60", occupied)
	}
	if occupied["E13"] {
		t.Fatal("E13 should be free")
	}
}

func TestCommittedLaptops(t *testing.T) {
	installs := []backend.Installation{
		inst("E12", 3, "", 0, "", 0),
		inst("E13", 7, "", 0, "", 0),
	}
	taken := CommittedLaptops(installs)
	if !taken[3] || !taken[7] {
		t.Fatalf("taken = %v, want 3 and 7", taken)
	}
	if taken[1] {
		t.Fatal("laptop 1 should be free")
	}
}

// A printer number is committed whether it sits in the primary or the
// secondary slot of an installation.
func TestCommittedPrintersBothSlots(t *testing.T) {
	installs := []backend.Installation{
		inst("E12", 1, "brother", 5, "godex", 2),
		inst("E13", 2, "godex", 9, "", 0),
	}

	brother := CommittedPrinters(installs, PrinterBrother)
	if !brother[5] {
		t.Fatal("brother #5 (primary slot) should be committed")
	}
	if brother[2] || brother[9] {
		t.Fatalf("brother set contaminated by godex numbers: %v", brother)
	}

	godex := CommittedPrinters(installs, PrinterGodex)
	if !godex[2] {
		t.Fatal("godex #2 (secondary slot) should be committed")
	}
	if !godex[9] {
		t.Fatal("godex #9 (primary slot) should be committed")
	}
}

func TestExcludedLaptopsSingleMode(t *testing.T) {
	installs := []backend.Installation{inst("E12", 4, "", 0, "", 0)}
	s := NewSession()
	s.SelectMode(ModeSingle)

	taken := s.ExcludedLaptops(installs)
	if !taken[4] {
		t.Fatal("committed laptop must be excluded")
	}
	if len(taken) != 1 {
		t.Fatalf("taken = %v, want only #4", taken)
	}
}

// In a bulk session, numbers held by sibling entries are excluded, but the
// entry under the cursor keeps its own choice offerable.
func TestExcludedLaptopsBulkSelfExempt(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.ToggleBooth(14)
	s.BeginConfigs()
	s.SelectLaptop(1)
	s.NextConfig()
	s.SelectLaptop(2)
	s.NextConfig() // cursor now on E14

	taken := s.ExcludedLaptops(nil)
	if !taken[1] || !taken[2] {
		t.Fatalf("taken = %v, want sibling laptops 1 and 2", taken)
	}

	// Step back to E13: its own laptop #2 must become offerable again,
	// while E12's #1 stays excluded.
	s.Back()
	taken = s.ExcludedLaptops(nil)
	if taken[2] {
		t.Fatal("the cursor entry's own laptop must not be excluded")
	}
	if !taken[1] {
		t.Fatal("sibling laptop must stay excluded")
	}
}

func TestExcludedPrintersBulk(t *testing.T) {
	installs := []backend.Installation{inst("D1", 9, "brother", 11, "", 0)}

	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.BeginConfigs()
	s.SelectLaptop(1)
	s.SelectPrinterType(1, PrinterBrother)
	s.SelectPrinterNumber(1, 3)
	s.NextConfig() // cursor on E13

	taken := s.ExcludedPrinters(installs, PrinterBrother)
	if !taken[11] {
		t.Fatal("committed brother #11 must be excluded")
	}
	if !taken[3] {
		t.Fatal("sibling entry's brother #3 must be excluded")
	}

	// Godex pool is unaffected by brother choices.
	godex := s.ExcludedPrinters(installs, PrinterGodex)
	if len(godex) != 0 {
		t.Fatalf("godex exclusions = %v, want none", godex)
	}
}

// Exclusion never shrinks the pool: every number is rendered, taken ones
// flagged, so page boundaries are stable.
func TestPoolViewKeepsFullRange(t *testing.T) {
	view := PoolView(LaptopNumbers(), map[int]bool{2: true, 25: true})
	if len(view) != LaptopPoolSize {
		t.Fatalf("view length = %d, want %d", len(view), LaptopPoolSize)
	}
	if !view[1].Taken || !view[24].Taken {
		t.Fatal("taken flags not set")
	}
	if view[0].Taken {
		t.Fatal("free number flagged as taken")
	}
}
