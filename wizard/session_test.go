package wizard

import (
	"sync"
	"testing"
)

func TestSingleModeFlow(t *testing.T) {
	s := NewSession()
	if s.Step != StepMode {
		t.Fatalf("new session step = %s, want %s", s.Step, StepMode)
	}

	if err := s.SelectMode(ModeSingle); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	if s.Step != StepEvent {
		t.Fatalf("step after mode = %s, want %s", s.Step, StepEvent)
	}

	if err := s.SelectEvent(nil); err != nil {
		t.Fatalf("SelectEvent: %v", err)
	}
	if err := s.SelectZone("E"); err != nil {
		t.Fatalf("SelectZone: %v", err)
	}
	if err := s.SelectBooth(15); err != nil {
		t.Fatalf("SelectBooth: %v", err)
	}
	if s.Step != StepLaptop {
		t.Fatalf("step after booth = %s, want %s", s.Step, StepLaptop)
	}

	if err := s.SelectLaptop(3); err != nil {
		t.Fatalf("SelectLaptop: %v", err)
	}

	submit, err := s.SelectPrinterType(1, PrinterBrother)
	if err != nil {
		t.Fatalf("SelectPrinterType: %v", err)
	}
	if submit {
		t.Fatal("choosing a printer type should not complete the flow")
	}
	if s.Step != StepPrinterNumber {
		t.Fatalf("step = %s, want %s", s.Step, StepPrinterNumber)
	}

	submit, err = s.SelectPrinterNumber(1, 7)
	if err != nil {
		t.Fatalf("SelectPrinterNumber: %v", err)
	}
	if submit {
		t.Fatal("primary printer number should lead to the second printer step")
	}
	if s.Step != StepSecondPrinterType {
		t.Fatalf("step = %s, want %s", s.Step, StepSecondPrinterType)
	}

	// Declining the second printer completes the flow.
	submit, err = s.SelectPrinterType(2, PrinterNone)
	if err != nil {
		t.Fatalf("SelectPrinterType(2, none): %v", err)
	}
	if !submit {
		t.Fatal("declining the second printer should complete the flow")
	}
}

func TestPrinterNoneSkipsNumberStep(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)
	s.SelectZone("C")
	s.SelectBooth(5)
	s.SelectLaptop(1)

	submit, err := s.SelectPrinterType(1, PrinterNone)
	if err != nil {
		t.Fatalf("SelectPrinterType: %v", err)
	}
	if !submit {
		t.Fatal("no printer at all should complete the flow")
	}
	if s.PrinterNumber != nil {
		t.Fatal("printer number should stay empty when no printer is chosen")
	}
}

func TestStepOrderEnforced(t *testing.T) {
	s := NewSession()
	if err := s.SelectZone("E"); err == nil {
		t.Fatal("zone choice before mode/event should be refused")
	}
	if err := s.SelectBooth(15); err == nil {
		t.Fatal("booth choice before zone should be refused")
	}
	if err := s.SelectLaptop(1); err == nil {
		t.Fatal("laptop choice before booth should be refused")
	}
}

func TestSelectZoneValidation(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)

	if err := s.SelectZone("Z"); err == nil {
		t.Fatal("unknown zone should be refused")
	}
	if err := s.SelectZone("F"); err != nil {
		t.Fatalf("SelectZone(F): %v", err)
	}
	// F runs 28..51.
	if err := s.SelectBooth(27); err == nil {
		t.Fatal("booth below the zone range should be refused")
	}
	if err := s.SelectBooth(52); err == nil {
		t.Fatal("booth above the zone range should be refused")
	}
	if err := s.SelectBooth(28); err != nil {
		t.Fatalf("SelectBooth(28): %v", err)
	}
}

func TestZoneChangeClearsBooths(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("D")
	s.ToggleBooth(1)
	s.ToggleBooth(2)

	s.Back() // booth -> zone
	if err := s.SelectZone("G"); err != nil {
		t.Fatalf("SelectZone(G): %v", err)
	}
	if len(s.Booths) != 0 {
		t.Fatalf("booths after zone change = %v, want none", s.Booths)
	}
}

func TestToggleBooth(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("D")

	s.ToggleBooth(3)
	s.ToggleBooth(7)
	s.ToggleBooth(3) // off again
	if len(s.Booths) != 1 || s.Booths[0] != 7 {
		t.Fatalf("booths = %v, want [7]", s.Booths)
	}
}

func TestBulkConfigCursor(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.ToggleBooth(14)

	if err := s.BeginConfigs(); err != nil {
		t.Fatalf("BeginConfigs: %v", err)
	}
	if len(s.Configs) != 3 || s.Cursor != 0 {
		t.Fatalf("configs = %d cursor = %d, want 3 and 0", len(s.Configs), s.Cursor)
	}
	if s.Configs[0].Rack != "E12" || s.Configs[2].Rack != "E14" {
		t.Fatalf("racks = %s..%s, want E12..E14", s.Configs[0].Rack, s.Configs[2].Rack)
	}

	// Cannot advance without a laptop.
	if err := s.NextConfig(); err == nil {
		t.Fatal("NextConfig without laptop should be refused")
	}

	if err := s.SelectLaptop(1); err != nil {
		t.Fatalf("SelectLaptop: %v", err)
	}
	if err := s.NextConfig(); err != nil {
		t.Fatalf("NextConfig: %v", err)
	}
	if s.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", s.Cursor)
	}

	s.SelectLaptop(2)
	s.NextConfig()
	s.SelectLaptop(3)
	if err := s.NextConfig(); err != nil {
		t.Fatalf("NextConfig (last): %v", err)
	}
	if s.Step != StepBulkSummary {
		t.Fatalf("step after last config = %s, want %s", s.Step, StepBulkSummary)
	}
}

func TestBulkBack(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.BeginConfigs()
	s.SelectLaptop(1)
	s.NextConfig()

	s.Back()
	if s.Cursor != 0 || s.Step != StepBulkConfig {
		t.Fatalf("cursor = %d step = %s, want 0 and %s", s.Cursor, s.Step, StepBulkConfig)
	}
	s.Back()
	if s.Step != StepBooth {
		t.Fatalf("step = %s, want %s (back past entry 0)", s.Step, StepBooth)
	}
}

func TestBackFromSummaryReturnsToLastConfig(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.BeginConfigs()
	s.SelectLaptop(1)
	s.NextConfig()
	s.SelectLaptop(2)
	s.NextConfig()

	s.Back()
	if s.Step != StepBulkConfig || s.Cursor != 1 {
		t.Fatalf("step = %s cursor = %d, want %s and 1", s.Step, s.Cursor, StepBulkConfig)
	}
}

func TestRemoveConfig(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.BeginConfigs()
	s.SelectLaptop(1)
	s.NextConfig()
	s.SelectLaptop(2)
	s.NextConfig()

	if err := s.RemoveConfig(0); err != nil {
		t.Fatalf("RemoveConfig: %v", err)
	}
	if len(s.Configs) != 1 || s.Configs[0].Rack != "E13" {
		t.Fatalf("configs = %v, want only E13", s.Configs)
	}

	// Removing the last entry returns to booth selection with nothing chosen.
	if err := s.RemoveConfig(0); err != nil {
		t.Fatalf("RemoveConfig (last): %v", err)
	}
	if s.Step != StepBooth || len(s.Booths) != 0 {
		t.Fatalf("step = %s booths = %v, want %s and none", s.Step, s.Booths, StepBooth)
	}
}

func TestPrinterNoneClearsDependentFields(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.BeginConfigs()
	s.SelectLaptop(1)
	s.SelectPrinterType(1, PrinterBrother)
	s.SelectPrinterNumber(1, 5)
	s.SelectPrinterType(2, PrinterGodex)
	s.SelectPrinterNumber(2, 3)

	// Flipping the primary back to none clears every printer field.
	s.SelectPrinterType(1, PrinterNone)
	cfg, ok := s.CurrentConfig()
	if !ok {
		t.Fatal("no configuration under cursor")
	}
	if cfg.PrinterNumber != nil || cfg.SecondPrinterType != PrinterNone || cfg.SecondPrinterNumber != nil {
		t.Fatalf("printer fields not cleared: %+v", cfg)
	}
}

// Concurrent requests on the same session (double-tap, a second tab) must
// serialize on the session, not race on its state.
func TestConcurrentSessionAccess(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("F")
	for booth := 28; booth <= 35; booth++ {
		s.ToggleBooth(booth)
	}
	s.BeginConfigs()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.SelectLaptop(i%LaptopPoolSize + 1)
			s.NextConfig()
			s.Back()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.ExcludedLaptops(nil)
			s.CurrentConfig()
			s.Snapshot()
		}
	}()
	wg.Wait()

	if _, ok := s.CurrentConfig(); !ok && s.Snapshot().Step == StepBulkConfig {
		t.Fatal("cursor left outside the config list")
	}
}

func TestPoolBounds(t *testing.T) {
	s := NewSession()
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)
	s.SelectZone("C")
	s.SelectBooth(3)

	if err := s.SelectLaptop(0); err == nil {
		t.Fatal("laptop #0 should be refused")
	}
	if err := s.SelectLaptop(LaptopPoolSize + 1); err == nil {
		t.Fatal("laptop above the pool should be refused")
	}
	if err := s.SelectLaptop(LaptopPoolSize); err != nil {
		t.Fatalf("SelectLaptop(max): %v", err)
	}

	s.SelectPrinterType(1, PrinterGodex)
	if _, err := s.SelectPrinterNumber(1, GodexPoolSize+1); err == nil {
		t.Fatal("printer above the godex pool should be refused")
	}
	if _, err := s.SelectPrinterNumber(1, GodexPoolSize); err != nil {
		t.Fatalf("SelectPrinterNumber(max): %v", err)
	}
}

func TestResetPreservesIdentity(t *testing.T) {
	s := NewSession()
	id := s.ID
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.SelectBooth(15)

	s.Reset()
	if s.ID != id {
		t.Fatal("reset must keep the session id")
	}
	if s.Step != StepMode || s.Zone != "" || s.Booth != 0 {
		t.Fatalf("reset left selections behind: %+v", s)
	}
}
