package messaging

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope(KindInstallationCreated, "expotrack", InstallationCreatedPayload{
		Rack:   "E15",
		Laptop: 4,
		Actor:  "admin",
	})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if env.ID == "" {
		t.Fatal("envelope must carry a message id")
	}

	data, err := env.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if got.Kind != KindInstallationCreated || got.AppID != "expotrack" || got.ID != env.ID {
		t.Fatalf("decoded = %+v", got)
	}

	var payload InstallationCreatedPayload
	if err := json.Unmarshal(got.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Rack != "E15" || payload.Laptop != 4 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestEnvelopeOmitsEmptyPrinterFields(t *testing.T) {
	env, err := NewEnvelope(KindInstallationCreated, "expotrack", InstallationCreatedPayload{
		Rack:   "C3",
		Laptop: 1,
	})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(env.Payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["printer_type"]; ok {
		t.Fatal("absent printer must not appear in the payload")
	}
}
