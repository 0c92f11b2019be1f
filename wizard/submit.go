package wizard

import (
	"fmt"
	"log"
	"strings"

	"expotrack/backend"
)

// Creator issues one create-request to the remote store.
type Creator interface {
	CreateInstallation(*backend.Installation) (*backend.Installation, error)
}

// Emitter is the interface adapters must satisfy to bridge wizard events to
// the engine.
type Emitter interface {
	EmitInstallationCreated(inst *backend.Installation, actor string)
	EmitBulkSubmitted(succeeded, failed int, racks []string, actor string)
}

// ValidationError is a pre-submission refusal. Nothing was sent to the store.
type ValidationError struct {
	Reason string
	Racks  []string
}

func (e *ValidationError) Error() string {
	if len(e.Racks) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Racks, ", "))
	}
	return e.Reason
}

// EntryResult is the outcome of one bulk create attempt.
type EntryResult struct {
	Rack         string                `json:"rack"`
	Installation *backend.Installation `json:"installation,omitempty"`
	Err          error                 `json:"-"`
	Error        string                `json:"error,omitempty"`
}

// BulkResult tallies a whole bulk submission. One entry's failure never
// cancels the others; there is no rollback of partial progress.
type BulkResult struct {
	Entries   []EntryResult `json:"entries"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// FailedRacks names the racks whose create call failed.
func (r *BulkResult) FailedRacks() []string {
	var racks []string
	for _, e := range r.Entries {
		if e.Err != nil {
			racks = append(racks, e.Rack)
		}
	}
	return racks
}

type Submitter struct {
	creator Creator
	emitter Emitter
	logf    func(format string, args ...any)
}

func NewSubmitter(creator Creator, emitter Emitter) *Submitter {
	return &Submitter{creator: creator, emitter: emitter, logf: log.Printf}
}

// SubmitSingle issues exactly one create-request from a single-mode session.
// On failure the session is left intact so the user may retry; on success it
// is cleared. The session stays locked for the whole call, so a concurrent
// duplicate submit waits and then fails validation against the cleared state
// instead of double-issuing the create.
func (sb *Submitter) SubmitSingle(s *Session, actor string) (*backend.Installation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode != ModeSingle {
		return nil, fmt.Errorf("session is not in single mode")
	}
	if s.Zone == "" {
		return nil, &ValidationError{Reason: "zone not chosen"}
	}
	if s.Booth == 0 {
		return nil, &ValidationError{Reason: "rack not chosen"}
	}
	if s.Laptop == nil {
		return nil, &ValidationError{Reason: "laptop not chosen"}
	}

	record := &backend.Installation{
		Rack:                RackID(s.Zone, s.Booth),
		Laptop:              *s.Laptop,
		PrinterType:         printerTypeField(s.PrinterType),
		PrinterNumber:       printerNumberField(s.PrinterType, s.PrinterNumber),
		SecondPrinterType:   printerTypeField(s.SecondPrinterType),
		SecondPrinterNumber: printerNumberField(s.SecondPrinterType, s.SecondPrinterNumber),
		EventID:             s.EventID,
	}

	stored, err := sb.creator.CreateInstallation(record)
	if err != nil {
		sb.logf("wizard: create installation %s: %v", record.Rack, err)
		return nil, err
	}

	sb.emitter.EmitInstallationCreated(stored, actor)
	s.reset()
	return stored, nil
}

// SubmitBulk refuses up front when any entry lacks a laptop, naming the
// offending racks. Otherwise it issues create-requests strictly in entry
// order, each awaited and independently tallied, and clears the session
// afterwards regardless of the outcome.
func (sb *Submitter) SubmitBulk(s *Session, actor string) (*BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode != ModeBulk {
		return nil, fmt.Errorf("session is not in bulk mode")
	}
	if len(s.Configs) == 0 {
		return nil, &ValidationError{Reason: "no racks configured"}
	}

	var missing []string
	for i := range s.Configs {
		if s.Configs[i].Laptop == nil {
			missing = append(missing, s.Configs[i].Rack)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Reason: "laptop not chosen for racks", Racks: missing}
	}

	result := &BulkResult{Entries: make([]EntryResult, 0, len(s.Configs))}
	var racks []string
	for i := range s.Configs {
		cfg := &s.Configs[i]
		racks = append(racks, cfg.Rack)
		record := &backend.Installation{
			Rack:                cfg.Rack,
			Laptop:              *cfg.Laptop,
			PrinterType:         printerTypeField(cfg.PrinterType),
			PrinterNumber:       printerNumberField(cfg.PrinterType, cfg.PrinterNumber),
			SecondPrinterType:   printerTypeField(cfg.SecondPrinterType),
			SecondPrinterNumber: printerNumberField(cfg.SecondPrinterType, cfg.SecondPrinterNumber),
			EventID:             s.EventID,
		}

		stored, err := sb.creator.CreateInstallation(record)
		if err != nil {
			sb.logf("wizard: create installation %s: %v", cfg.Rack, err)
			result.Entries = append(result.Entries, EntryResult{Rack: cfg.Rack, Err: err, Error: err.Error()})
			result.Failed++
			continue
		}
		result.Entries = append(result.Entries, EntryResult{Rack: cfg.Rack, Installation: stored})
		result.Succeeded++
	}

	sb.emitter.EmitBulkSubmitted(result.Succeeded, result.Failed, racks, actor)

	// The session is discarded even when every entry failed. Known usability
	// gap kept for behavioural parity; see DESIGN.md.
	s.reset()
	return result, nil
}

func printerTypeField(t PrinterType) *string {
	if t == PrinterNone || t == "" {
		return nil
	}
	v := string(t)
	return &v
}

func printerNumberField(t PrinterType, n *int) *int {
	if t == PrinterNone || t == "" {
		return nil
	}
	return n
}
