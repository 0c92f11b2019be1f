package engine

import (
	"log"
	"sync"
	"time"

	"expotrack/backend"
	"expotrack/catalog"
	"expotrack/config"
	"expotrack/notify"
	"expotrack/store"
	"expotrack/wizard"
)

type LogFunc func(format string, args ...any)

type Config struct {
	AppConfig  *config.Config
	ConfigPath string
	DB         *store.DB
	Backend    *backend.Client
	Catalog    *catalog.Manager
	MsgClient  MsgClient
	LogFunc    LogFunc
	Debug      bool
}

// MsgClient is the slice of the messaging client the engine needs.
type MsgClient interface {
	IsConnected() bool
}

type Engine struct {
	cfg          *config.Config
	configPath   string
	db           *store.DB
	backend      *backend.Client
	catalog      *catalog.Manager
	msgClient    MsgClient
	wizards      *wizard.Manager
	submitter    *wizard.Submitter
	notifier     *notify.Center
	Events       *EventBus
	logFn        LogFunc
	stopChan     chan struct{}
	stopOnce     sync.Once
	backendUp    bool
	messagingUp  bool
}

func New(c Config) *Engine {
	logFn := c.LogFunc
	if logFn == nil {
		logFn = log.Printf
	}
	return &Engine{
		cfg:        c.AppConfig,
		configPath: c.ConfigPath,
		db:         c.DB,
		backend:    c.Backend,
		catalog:    c.Catalog,
		msgClient:  c.MsgClient,
		Events:     NewEventBus(),
		logFn:      logFn,
		stopChan:   make(chan struct{}),
	}
}

func (e *Engine) Start() {
	// Wizard flow: sessions plus a submitter bridged onto the bus
	we := &wizardEmitter{bus: e.Events}
	e.wizards = wizard.NewManager()
	e.submitter = wizard.NewSubmitter(e.backend, we)

	// Notification center polling the snapshot cache
	ne := &notifierEmitter{bus: e.Events}
	e.notifier = notify.NewCenter(e.catalog, e.db, e.cfg.Notify.PollInterval, ne.refreshed)

	// Wire event handlers
	e.wireEventHandlers()

	// First derivation immediately, then on the timer
	e.notifier.Start()

	// Emit initial connection status
	e.checkConnectionStatus()

	// Start periodic connection health check
	go e.connectionHealthLoop()

	e.logFn("engine: started")
}

func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopChan) })
	if e.notifier != nil {
		e.notifier.Stop()
	}
	e.logFn("engine: stopped")
}

// Accessors
func (e *Engine) DB() *store.DB                 { return e.db }
func (e *Engine) AppConfig() *config.Config     { return e.cfg }
func (e *Engine) ConfigPath() string            { return e.configPath }
func (e *Engine) Backend() *backend.Client      { return e.backend }
func (e *Engine) Catalog() *catalog.Manager     { return e.catalog }
func (e *Engine) Wizards() *wizard.Manager      { return e.wizards }
func (e *Engine) Submitter() *wizard.Submitter  { return e.submitter }
func (e *Engine) Notifier() *notify.Center      { return e.notifier }

func (e *Engine) checkConnectionStatus() {
	// Remote data store
	if err := e.backend.Ping(); err == nil {
		if !e.backendUp {
			e.backendUp = true
			e.Events.Emit(Event{Type: EventBackendConnected, Payload: ConnectionEvent{Detail: "data store connected"}})
		}
	} else {
		if e.backendUp {
			e.backendUp = false
			e.Events.Emit(Event{Type: EventBackendDisconnected, Payload: ConnectionEvent{Detail: err.Error()}})
		}
	}

	// Messaging
	if e.msgClient != nil && e.msgClient.IsConnected() {
		if !e.messagingUp {
			e.messagingUp = true
			e.Events.Emit(Event{Type: EventMessagingConnected, Payload: ConnectionEvent{Detail: "messaging connected"}})
		}
	} else {
		if e.messagingUp {
			e.messagingUp = false
			e.Events.Emit(Event{Type: EventMessagingDisconnected, Payload: ConnectionEvent{Detail: "messaging disconnected"}})
		}
	}
}

func (e *Engine) connectionHealthLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			e.checkConnectionStatus()
		}
	}
}

// ReconfigureBackend applies data store config changes live.
func (e *Engine) ReconfigureBackend() {
	e.backend.Reconfigure(e.cfg.Backend.BaseURL, e.cfg.Backend.APIKey, e.cfg.Backend.Timeout)
	e.logFn("engine: backend reconfigured (%s)", e.cfg.Backend.BaseURL)
	e.catalog.Invalidate()
	e.checkConnectionStatus()
}
