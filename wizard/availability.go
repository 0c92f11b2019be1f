package wizard

import "expotrack/backend"

// Exclusion sets are recomputed fresh on every call from the committed
// snapshot and the live session, never cached or diffed. A number is excluded
// when any persisted installation holds it, or (bulk) when another entry of
// the same session holds it; the entry under the cursor is exempt so a user
// can revisit its own choice.

// OccupiedRacks returns the rack ids held by committed installations.
func OccupiedRacks(installs []backend.Installation) map[string]bool {
	racks := make(map[string]bool, len(installs))
	for _, inst := range installs {
		racks[inst.Rack] = true
	}
	return racks
}

// CommittedLaptops returns laptop numbers held by committed installations.
func CommittedLaptops(installs []backend.Installation) map[int]bool {
	taken := make(map[int]bool, len(installs))
	for _, inst := range installs {
		if inst.Laptop > 0 {
			taken[inst.Laptop] = true
		}
	}
	return taken
}

// CommittedPrinters returns printer numbers of the given type held by
// committed installations, in either the primary or secondary slot.
func CommittedPrinters(installs []backend.Installation, t PrinterType) map[int]bool {
	taken := make(map[int]bool)
	for _, inst := range installs {
		if inst.PrinterType != nil && PrinterType(*inst.PrinterType) == t && inst.PrinterNumber != nil {
			taken[*inst.PrinterNumber] = true
		}
		if inst.SecondPrinterType != nil && PrinterType(*inst.SecondPrinterType) == t && inst.SecondPrinterNumber != nil {
			taken[*inst.SecondPrinterNumber] = true
		}
	}
	return taken
}

// ExcludedLaptops returns the laptop numbers not offerable to the entry
// currently being edited.
func (s *Session) ExcludedLaptops(installs []backend.Installation) map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := CommittedLaptops(installs)
	if s.Mode != ModeBulk {
		return taken
	}
	for i := range s.Configs {
		if i == s.Cursor {
			continue
		}
		if n := s.Configs[i].Laptop; n != nil {
			taken[*n] = true
		}
	}
	return taken
}

// ExcludedPrinters returns the printer numbers of one type not offerable to
// the entry currently being edited.
func (s *Session) ExcludedPrinters(installs []backend.Installation, t PrinterType) map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := CommittedPrinters(installs, t)
	if s.Mode != ModeBulk {
		return taken
	}
	for i := range s.Configs {
		if i == s.Cursor {
			continue
		}
		cfg := &s.Configs[i]
		if cfg.PrinterType == t && cfg.PrinterNumber != nil {
			taken[*cfg.PrinterNumber] = true
		}
		if cfg.SecondPrinterType == t && cfg.SecondPrinterNumber != nil {
			taken[*cfg.SecondPrinterNumber] = true
		}
	}
	return taken
}

// PoolEntry is one offerable number with its exclusion flag. Excluded numbers
// are rendered but disabled, so paging runs over the full range.
type PoolEntry struct {
	Number int  `json:"number"`
	Taken  bool `json:"taken"`
}

// PoolView marks each number of a pool against an exclusion set.
func PoolView(numbers []int, excluded map[int]bool) []PoolEntry {
	view := make([]PoolEntry, len(numbers))
	for i, n := range numbers {
		view[i] = PoolEntry{Number: n, Taken: excluded[n]}
	}
	return view
}
