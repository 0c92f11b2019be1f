package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every message published to external listeners (the bot,
// dashboards). The payload shape depends on Kind.
type Envelope struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	AppID     string          `json:"app_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	KindInstallationCreated   = "installation_created"
	KindInstallationCompleted = "installation_completed"
	KindBulkSubmitted         = "bulk_submitted"
	KindDataChanged           = "data_changed"
)

// InstallationCreatedPayload announces one new committed installation.
type InstallationCreatedPayload struct {
	Rack                string `json:"rack"`
	Laptop              int    `json:"laptop"`
	PrinterType         string `json:"printer_type,omitempty"`
	PrinterNumber       int    `json:"printer_number,omitempty"`
	SecondPrinterType   string `json:"second_printer_type,omitempty"`
	SecondPrinterNumber int    `json:"second_printer_number,omitempty"`
	EventID             int64  `json:"event_id,omitempty"`
	Actor               string `json:"actor,omitempty"`
}

// BulkSubmittedPayload summarizes one bulk wizard run.
type BulkSubmittedPayload struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Racks     []string `json:"racks"`
	Actor     string   `json:"actor,omitempty"`
}

// DataChangedPayload is the refresh broadcast: something in the named scope
// changed, listeners should refetch.
type DataChangedPayload struct {
	Scope string `json:"scope"`
}

func NewEnvelope(kind, appID string, payload any) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		ID:        uuid.New().String(),
		Kind:      kind,
		AppID:     appID,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	}, nil
}

func (e *Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
