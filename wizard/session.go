package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeBulk   Mode = "bulk"
)

type Step string

const (
	StepMode                Step = "mode"
	StepEvent               Step = "event"
	StepZone                Step = "zone"
	StepBooth               Step = "booth"
	StepLaptop              Step = "laptop"
	StepPrinterType         Step = "printer-type"
	StepPrinterNumber       Step = "printer-number"
	StepSecondPrinterType   Step = "second-printer-type"
	StepSecondPrinterNumber Step = "second-printer-number"
	StepBulkConfig          Step = "bulk-config"
	StepBulkSummary         Step = "bulk-summary"
)

// RackConfig is one per-rack equipment choice inside a bulk session.
type RackConfig struct {
	Rack                string      `json:"rack"`
	Laptop              *int        `json:"laptop"`
	PrinterType         PrinterType `json:"printer_type"`
	PrinterNumber       *int        `json:"printer_number"`
	SecondPrinterType   PrinterType `json:"second_printer_type"`
	SecondPrinterNumber *int        `json:"second_printer_number"`
}

// Session is the in-progress wizard state for one user: created when the
// wizard opens, mutated only by step transitions, discarded on close or after
// submission. The mutex serializes concurrent requests on the same session
// (double-tap, a second tab); every exported method takes it.
type Session struct {
	mu *sync.Mutex

	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	Step      Step      `json:"step"`
	CreatedAt time.Time `json:"created_at"`

	EventID *int64 `json:"event_id"`
	Zone    string `json:"zone"`

	// AllowedZones restricts zone choice when the selected event names its
	// zones. Empty means every zone is offered.
	AllowedZones []string `json:"allowed_zones,omitempty"`

	// Single mode selections.
	Booth               int         `json:"booth"`
	Laptop              *int        `json:"laptop"`
	PrinterType         PrinterType `json:"printer_type"`
	PrinterNumber       *int        `json:"printer_number"`
	SecondPrinterType   PrinterType `json:"second_printer_type"`
	SecondPrinterNumber *int        `json:"second_printer_number"`

	// Bulk mode selections.
	Booths  []int        `json:"booths"`
	Configs []RackConfig `json:"configs"`
	Cursor  int          `json:"cursor"`
}

func NewSession() *Session {
	return &Session{
		mu:                &sync.Mutex{},
		ID:                "wz-" + uuid.New().String()[:8],
		Mode:              ModeSingle,
		Step:              StepMode,
		PrinterType:       PrinterNone,
		SecondPrinterType: PrinterNone,
		CreatedAt:         time.Now(),
	}
}

// Reset returns the session to its opening state, dropping every selection.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.Mode = ModeSingle
	s.Step = StepMode
	s.EventID = nil
	s.Zone = ""
	s.AllowedZones = nil
	s.Booth = 0
	s.Laptop = nil
	s.PrinterType = PrinterNone
	s.PrinterNumber = nil
	s.SecondPrinterType = PrinterNone
	s.SecondPrinterNumber = nil
	s.Booths = nil
	s.Configs = nil
	s.Cursor = 0
}

// Snapshot returns a consistent copy for rendering. Slices are copied so the
// caller may read them while the session keeps moving.
func (s *Session) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s
	cp.mu = nil
	cp.AllowedZones = append([]string(nil), s.AllowedZones...)
	cp.Booths = append([]int(nil), s.Booths...)
	cp.Configs = append([]RackConfig(nil), s.Configs...)
	return cp
}

func (s *Session) SelectMode(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != ModeSingle && mode != ModeBulk {
		return fmt.Errorf("unknown mode: %s", mode)
	}
	if s.Step != StepMode {
		return s.stepError(StepMode)
	}
	s.Mode = mode
	s.Step = StepEvent
	return nil
}

// SelectEvent picks an event (nil means "no event") and moves to zone choice.
func (s *Session) SelectEvent(eventID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepEvent {
		return s.stepError(StepEvent)
	}
	s.EventID = eventID
	s.AllowedZones = nil
	s.Step = StepZone
	return nil
}

// RestrictZones limits the offered zones to the event's list. Unknown zone
// letters in the list are ignored.
func (s *Session) RestrictZones(zones []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AllowedZones = nil
	for _, z := range zones {
		if _, ok := ZoneRangeFor(z); ok {
			s.AllowedZones = append(s.AllowedZones, z)
		}
	}
}

// OfferedZones returns the zones this session may choose from, in floor order.
func (s *Session) OfferedZones() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.AllowedZones) == 0 {
		return Zones
	}
	allowed := make(map[string]bool, len(s.AllowedZones))
	for _, z := range s.AllowedZones {
		allowed[z] = true
	}
	var out []string
	for _, z := range Zones {
		if allowed[z] {
			out = append(out, z)
		}
	}
	return out
}

func (s *Session) zoneAllowed(zone string) bool {
	if len(s.AllowedZones) == 0 {
		return true
	}
	for _, z := range s.AllowedZones {
		if z == zone {
			return true
		}
	}
	return false
}

// SelectZone validates the zone and clears any booth selections made under a
// previously chosen zone.
func (s *Session) SelectZone(zone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepZone {
		return s.stepError(StepZone)
	}
	if _, ok := ZoneRangeFor(zone); !ok {
		return fmt.Errorf("unknown zone: %s", zone)
	}
	if !s.zoneAllowed(zone) {
		return fmt.Errorf("zone %s is not part of the selected event", zone)
	}
	s.Zone = zone
	s.Booth = 0
	s.Booths = nil
	s.Step = StepBooth
	return nil
}

// SelectBooth picks the single-mode rack and advances to laptop choice.
func (s *Session) SelectBooth(booth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepBooth || s.Mode != ModeSingle {
		return s.stepError(StepBooth)
	}
	if !ValidRack(s.Zone, booth) {
		return fmt.Errorf("booth %d is outside zone %s", booth, s.Zone)
	}
	s.Booth = booth
	s.Step = StepLaptop
	return nil
}

// ToggleBooth adds or removes a rack from the bulk selection.
func (s *Session) ToggleBooth(booth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepBooth || s.Mode != ModeBulk {
		return s.stepError(StepBooth)
	}
	if !ValidRack(s.Zone, booth) {
		return fmt.Errorf("booth %d is outside zone %s", booth, s.Zone)
	}
	for i, b := range s.Booths {
		if b == booth {
			s.Booths = append(s.Booths[:i], s.Booths[i+1:]...)
			return nil
		}
	}
	s.Booths = append(s.Booths, booth)
	return nil
}

// BeginConfigs initializes one empty configuration per selected rack and
// enters the cursor-driven per-rack flow.
func (s *Session) BeginConfigs() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepBooth || s.Mode != ModeBulk {
		return s.stepError(StepBooth)
	}
	if len(s.Booths) == 0 {
		return &ValidationError{Reason: "no racks selected"}
	}
	s.Configs = make([]RackConfig, len(s.Booths))
	for i, booth := range s.Booths {
		s.Configs[i] = RackConfig{
			Rack:              RackID(s.Zone, booth),
			PrinterType:       PrinterNone,
			SecondPrinterType: PrinterNone,
		}
	}
	s.Cursor = 0
	s.Step = StepBulkConfig
	return nil
}

// CurrentConfig returns a copy of the configuration under the cursor.
func (s *Session) CurrentConfig() (RackConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.currentConfig()
	if cfg == nil {
		return RackConfig{}, false
	}
	return *cfg, true
}

func (s *Session) currentConfig() *RackConfig {
	if s.Cursor < 0 || s.Cursor >= len(s.Configs) {
		return nil
	}
	return &s.Configs[s.Cursor]
}

func (s *Session) SelectLaptop(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > LaptopPoolSize {
		return fmt.Errorf("laptop #%d is outside the pool", n)
	}
	switch {
	case s.Mode == ModeSingle && s.Step == StepLaptop:
		s.Laptop = &n
		s.Step = StepPrinterType
		return nil
	case s.Mode == ModeBulk && s.Step == StepBulkConfig:
		cfg := s.currentConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration under cursor")
		}
		cfg.Laptop = &n
		return nil
	}
	return s.stepError(StepLaptop)
}

// SelectPrinterType records the printer type choice. Choosing "none" means
// the flow is complete and the caller should submit; submit reports that.
func (s *Session) SelectPrinterType(slot int, t PrinterType) (submit bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.Valid() {
		return false, fmt.Errorf("unknown printer type: %s", t)
	}
	if s.Mode == ModeBulk {
		if s.Step != StepBulkConfig {
			return false, s.stepError(StepBulkConfig)
		}
		cfg := s.currentConfig()
		if cfg == nil {
			return false, fmt.Errorf("no configuration under cursor")
		}
		switch slot {
		case 1:
			cfg.PrinterType = t
			if t == PrinterNone {
				cfg.PrinterNumber = nil
				cfg.SecondPrinterType = PrinterNone
				cfg.SecondPrinterNumber = nil
			}
		case 2:
			cfg.SecondPrinterType = t
			if t == PrinterNone {
				cfg.SecondPrinterNumber = nil
			}
		default:
			return false, fmt.Errorf("printer slot must be 1 or 2")
		}
		return false, nil
	}

	switch slot {
	case 1:
		if s.Step != StepPrinterType {
			return false, s.stepError(StepPrinterType)
		}
		s.PrinterType = t
		if t == PrinterNone {
			s.PrinterNumber = nil
			return true, nil
		}
		s.Step = StepPrinterNumber
	case 2:
		if s.Step != StepSecondPrinterType {
			return false, s.stepError(StepSecondPrinterType)
		}
		s.SecondPrinterType = t
		if t == PrinterNone {
			s.SecondPrinterNumber = nil
			return true, nil
		}
		s.Step = StepSecondPrinterNumber
	default:
		return false, fmt.Errorf("printer slot must be 1 or 2")
	}
	return false, nil
}

// SelectPrinterNumber records a printer number. In single mode picking the
// second printer's number completes the flow.
func (s *Session) SelectPrinterNumber(slot int, n int) (submit bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode == ModeBulk {
		if s.Step != StepBulkConfig {
			return false, s.stepError(StepBulkConfig)
		}
		cfg := s.currentConfig()
		if cfg == nil {
			return false, fmt.Errorf("no configuration under cursor")
		}
		switch slot {
		case 1:
			if err := checkPoolNumber(cfg.PrinterType, n); err != nil {
				return false, err
			}
			cfg.PrinterNumber = &n
		case 2:
			if err := checkPoolNumber(cfg.SecondPrinterType, n); err != nil {
				return false, err
			}
			cfg.SecondPrinterNumber = &n
		default:
			return false, fmt.Errorf("printer slot must be 1 or 2")
		}
		return false, nil
	}

	switch slot {
	case 1:
		if s.Step != StepPrinterNumber {
			return false, s.stepError(StepPrinterNumber)
		}
		if err := checkPoolNumber(s.PrinterType, n); err != nil {
			return false, err
		}
		s.PrinterNumber = &n
		s.Step = StepSecondPrinterType
		return false, nil
	case 2:
		if s.Step != StepSecondPrinterNumber {
			return false, s.stepError(StepSecondPrinterNumber)
		}
		if err := checkPoolNumber(s.SecondPrinterType, n); err != nil {
			return false, err
		}
		s.SecondPrinterNumber = &n
		return true, nil
	}
	return false, fmt.Errorf("printer slot must be 1 or 2")
}

// NextConfig advances the bulk cursor; past the last rack it moves to the
// summary. The current rack must have a laptop before moving on.
func (s *Session) NextConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepBulkConfig {
		return s.stepError(StepBulkConfig)
	}
	cfg := s.currentConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration under cursor")
	}
	if cfg.Laptop == nil {
		return &ValidationError{Reason: "laptop not chosen", Racks: []string{cfg.Rack}}
	}
	if s.Cursor < len(s.Configs)-1 {
		s.Cursor++
		return nil
	}
	s.Step = StepBulkSummary
	return nil
}

// Back steps to the predecessor of the current step. In the bulk per-rack
// flow it decrements the cursor, falling back to booth selection at entry 0.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.Step {
	case StepEvent:
		s.Step = StepMode
	case StepZone:
		s.Step = StepEvent
	case StepBooth:
		s.Step = StepZone
	case StepLaptop:
		s.Step = StepBooth
	case StepPrinterType:
		s.Step = StepLaptop
	case StepPrinterNumber:
		s.Step = StepPrinterType
	case StepSecondPrinterType:
		s.Step = StepPrinterNumber
	case StepSecondPrinterNumber:
		s.Step = StepSecondPrinterType
	case StepBulkConfig:
		if s.Cursor > 0 {
			s.Cursor--
		} else {
			s.Step = StepBooth
		}
	case StepBulkSummary:
		s.Cursor = len(s.Configs) - 1
		s.Step = StepBulkConfig
	}
}

// RemoveConfig drops one entry from the summary. Removing the last remaining
// entry returns to booth selection with the rack selection cleared.
func (s *Session) RemoveConfig(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepBulkSummary {
		return s.stepError(StepBulkSummary)
	}
	if idx < 0 || idx >= len(s.Configs) {
		return fmt.Errorf("no configuration %d", idx)
	}
	s.Configs = append(s.Configs[:idx], s.Configs[idx+1:]...)
	if len(s.Booths) > idx {
		s.Booths = append(s.Booths[:idx], s.Booths[idx+1:]...)
	}
	if len(s.Configs) == 0 {
		s.Booths = nil
		s.Cursor = 0
		s.Step = StepBooth
	}
	return nil
}

func checkPoolNumber(t PrinterType, n int) error {
	nums, err := PrinterNumbers(t)
	if err != nil {
		return fmt.Errorf("printer type not chosen")
	}
	if n < 1 || n > len(nums) {
		return fmt.Errorf("printer #%d is outside the %s pool", n, t)
	}
	return nil
}

func (s *Session) stepError(want Step) error {
	return fmt.Errorf("action not valid at step %q (expected %q)", s.Step, want)
}
