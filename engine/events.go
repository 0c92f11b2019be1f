package engine

const (
	EventInstallationCreated EventType = iota + 1
	EventInstallationCompleted
	EventBulkSubmitted
	EventEventChanged
	EventConsumableChanged
	EventDataChanged
	EventNotificationsRefreshed
	EventBackendConnected
	EventBackendDisconnected
	EventMessagingConnected
	EventMessagingDisconnected
)

// --- Event payloads ---

type InstallationCreatedEvent struct {
	InstallationID      int64
	Rack                string
	Laptop              int
	PrinterType         string
	PrinterNumber       int
	SecondPrinterType   string
	SecondPrinterNumber int
	EventID             *int64
	Actor               string
}

type InstallationCompletedEvent struct {
	InstallationID int64
	Rack           string
	Actor          string
}

type BulkSubmittedEvent struct {
	Succeeded int
	Failed    int
	Racks     []string
	Actor     string
}

type EventChangedEvent struct {
	EventID int64
	Name    string
	Action  string // "created", "completed", "deleted"
	Actor   string
}

type ConsumableChangedEvent struct {
	PrinterType  string
	ConsumableID int64
	Name         string
	Quantity     int
	Actor        string
}

// DataChangedEvent is the refresh broadcast dependent views react to.
type DataChangedEvent struct {
	Scope string // "installations", "events", "consumables", "all"
}

type NotificationsRefreshedEvent struct {
	Unread int
}

type ConnectionEvent struct {
	Detail string
}
