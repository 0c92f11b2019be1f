package wizard

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"expotrack/backend"
)

// fakeCreator records create calls and fails the racks it is told to.
type fakeCreator struct {
	created []backend.Installation
	failOn  map[string]bool
	nextID  int64
}

func (f *fakeCreator) CreateInstallation(inst *backend.Installation) (*backend.Installation, error) {
	if f.failOn[inst.Rack] {
		return nil, fmt.Errorf("store refused %s", inst.Rack)
	}
	f.nextID++
	stored := *inst
	stored.ID = f.nextID
	f.created = append(f.created, stored)
	return &stored, nil
}

type fakeEmitter struct {
	singles  int
	bulkOK   int
	bulkFail int
	racks    []string
}

func (f *fakeEmitter) EmitInstallationCreated(inst *backend.Installation, actor string) {
	f.singles++
}

func (f *fakeEmitter) EmitBulkSubmitted(succeeded, failed int, racks []string, actor string) {
	f.bulkOK = succeeded
	f.bulkFail = failed
	f.racks = racks
}

func newTestSubmitter(creator *fakeCreator, emitter *fakeEmitter) *Submitter {
	sb := NewSubmitter(creator, emitter)
	sb.logf = func(string, ...any) {}
	return sb
}

func singleSession() *Session {
	s := NewSession()
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.SelectBooth(15)
	s.SelectLaptop(4)
	s.SelectPrinterType(1, PrinterBrother)
	s.SelectPrinterNumber(1, 6)
	s.SelectPrinterType(2, PrinterNone)
	return s
}

func TestSubmitSingle(t *testing.T) {
	creator := &fakeCreator{}
	emitter := &fakeEmitter{}
	sb := newTestSubmitter(creator, emitter)

	s := singleSession()
	stored, err := sb.SubmitSingle(s, "admin")
	if err != nil {
		t.Fatalf("SubmitSingle: %v", err)
	}
	if stored.Rack != "E15" || stored.Laptop != 4 {
		t.Fatalf("stored = %+v", stored)
	}
	if stored.PrinterType == nil || *stored.PrinterType != "brother" || *stored.PrinterNumber != 6 {
		t.Fatalf("printer fields = %+v", stored)
	}
	if stored.SecondPrinterType != nil {
		t.Fatal("declined second printer must be absent")
	}
	if emitter.singles != 1 {
		t.Fatalf("emitted %d single events, want 1", emitter.singles)
	}
	if s.Step != StepMode {
		t.Fatal("session must be cleared after a successful submit")
	}
}

// Exactly one create-request per single submission.
func TestSubmitSingleOneRequest(t *testing.T) {
	creator := &fakeCreator{}
	sb := newTestSubmitter(creator, &fakeEmitter{})

	if _, err := sb.SubmitSingle(singleSession(), "admin"); err != nil {
		t.Fatalf("SubmitSingle: %v", err)
	}
	if len(creator.created) != 1 {
		t.Fatalf("create calls = %d, want 1", len(creator.created))
	}
}

// A session with no printer at all submits a payload whose four printer
// fields are all absent.
func TestSubmitSingleNoPrinter(t *testing.T) {
	creator := &fakeCreator{}
	sb := newTestSubmitter(creator, &fakeEmitter{})

	s := NewSession()
	s.SelectMode(ModeSingle)
	s.SelectEvent(nil)
	s.SelectZone("D")
	s.SelectBooth(2)
	s.SelectLaptop(9)
	s.SelectPrinterType(1, PrinterNone)

	stored, err := sb.SubmitSingle(s, "admin")
	if err != nil {
		t.Fatalf("SubmitSingle: %v", err)
	}
	if stored.Rack != "D2" || stored.Laptop != 9 {
		t.Fatalf("stored = %+v", stored)
	}
	sent := creator.created[0]
	if sent.PrinterType != nil || sent.PrinterNumber != nil ||
		sent.SecondPrinterType != nil || sent.SecondPrinterNumber != nil {
		t.Fatalf("printer fields must all be absent, got %+v", sent)
	}
}

// A duplicate concurrent submit must not double-issue the create: the second
// caller waits on the session and then fails validation against the cleared
// state.
func TestSubmitSingleConcurrentDuplicate(t *testing.T) {
	creator := &fakeCreator{}
	sb := newTestSubmitter(creator, &fakeEmitter{})
	s := singleSession()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := sb.SubmitSingle(s, "admin")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	if len(creator.created) != 1 {
		t.Fatalf("create calls = %d, want exactly 1", len(creator.created))
	}
	var ok, failed int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		failed++
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("duplicate submit error = %v, want ValidationError", err)
		}
	}
	if ok != 1 || failed != 1 {
		t.Fatalf("outcomes = %d ok / %d failed, want 1/1", ok, failed)
	}
}

func TestSubmitSingleFailureKeepsSession(t *testing.T) {
	creator := &fakeCreator{failOn: map[string]bool{"E15": true}}
	sb := newTestSubmitter(creator, &fakeEmitter{})

	s := singleSession()
	if _, err := sb.SubmitSingle(s, "admin"); err == nil {
		t.Fatal("expected create failure")
	}
	if s.Zone != "E" || s.Booth != 15 || s.Laptop == nil {
		t.Fatal("session must stay intact after a failed submit, so the user can retry")
	}
}

func TestSubmitSingleValidation(t *testing.T) {
	sb := newTestSubmitter(&fakeCreator{}, &fakeEmitter{})

	s := NewSession()
	s.SelectMode(ModeSingle)
	_, err := sb.SubmitSingle(s, "admin")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func bulkSession(t *testing.T) *Session {
	t.Helper()
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
	for _, n := range []int{1, 2, 3} {
		if err := s.SelectLaptop(n); err != nil {
			t.Fatalf("SelectLaptop(%d): %v", n, err)
		}
		if err := s.NextConfig(); err != nil {
			t.Fatalf("NextConfig: %v", err)
		}
	}
	return s
}

// A failed entry never cancels the rest: each create is tallied on its own,
// and partial progress is not rolled back.
func TestSubmitBulkPartialFailure(t *testing.T) {
	creator := &fakeCreator{failOn: map[string]bool{"E13": true}}
	emitter := &fakeEmitter{}
	sb := newTestSubmitter(creator, emitter)

	s := bulkSession(t)
	result, err := sb.SubmitBulk(s, "admin")
	if err != nil {
		t.Fatalf("SubmitBulk: %v", err)
	}
	if result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("tally = %d/%d, want 2/1", result.Succeeded, result.Failed)
	}
	if got := result.FailedRacks(); len(got) != 1 || got[0] != "E13" {
		t.Fatalf("failed racks = %v, want [E13]", got)
	}
	// E14 comes after the failing E13 and must still have been attempted.
	if len(creator.created) != 2 || creator.created[1].Rack != "E14" {
		t.Fatalf("created = %+v, want E12 then E14", creator.created)
	}
	if emitter.bulkOK != 2 || emitter.bulkFail != 1 {
		t.Fatalf("emitted tally = %d/%d, want 2/1", emitter.bulkOK, emitter.bulkFail)
	}
}

func TestSubmitBulkOrder(t *testing.T) {
	creator := &fakeCreator{}
	sb := newTestSubmitter(creator, &fakeEmitter{})

	if _, err := sb.SubmitBulk(bulkSession(t), "admin"); err != nil {
		t.Fatalf("SubmitBulk: %v", err)
	}
	want := []string{"E12", "E13", "E14"}
	for i, rack := range want {
		if creator.created[i].Rack != rack {
			t.Fatalf("create order = %v, want %v", creator.created, want)
		}
	}
}

// Missing laptops are refused up front, before anything is sent, and the
// refusal names every offending rack.
func TestSubmitBulkMissingLaptops(t *testing.T) {
	creator := &fakeCreator{}
	sb := newTestSubmitter(creator, &fakeEmitter{})

	s := NewSession()
	s.SelectMode(ModeBulk)
	s.SelectEvent(nil)
	s.SelectZone("E")
	s.ToggleBooth(12)
	s.ToggleBooth(13)
	s.BeginConfigs()

	_, err := sb.SubmitBulk(s, "admin")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Racks) != 2 {
		t.Fatalf("named racks = %v, want both", verr.Racks)
	}
	if len(creator.created) != 0 {
		t.Fatal("nothing may be sent when validation fails")
	}
}

func TestSubmitBulkClearsSession(t *testing.T) {
	// Even an all-fail run discards the session.
	creator := &fakeCreator{failOn: map[string]bool{"E12": true, "E13": true, "E14": true}}
	sb := newTestSubmitter(creator, &fakeEmitter{})

	s := bulkSession(t)
	result, err := sb.SubmitBulk(s, "admin")
	if err != nil {
		t.Fatalf("SubmitBulk: %v", err)
	}
	if result.Succeeded != 0 || result.Failed != 3 {
		t.Fatalf("tally = %d/%d, want 0/3", result.Succeeded, result.Failed)
	}
	if s.Step != StepMode || len(s.Configs) != 0 {
		t.Fatal("session must be discarded after bulk submission")
	}
}
