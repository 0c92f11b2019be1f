package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/kafka-go"

	"expotrack/config"
)

// Client publishes to the configured broker. The backend is selected by
// config: "kafka" or "mqtt".
type Client struct {
	mu  sync.Mutex
	cfg *config.MessagingConfig

	kafkaWriter *kafka.Writer
	mqttClient  mqtt.Client
	connected   bool
}

func NewClient(cfg *config.MessagingConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	switch c.cfg.Backend {
	case "kafka":
		c.kafkaWriter = &kafka.Writer{
			Addr:         kafka.TCP(c.cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		}
		c.connected = true
		return nil
	case "mqtt":
		opts := mqtt.NewClientOptions().
			AddBroker(c.cfg.BrokerURL).
			SetClientID(c.cfg.ClientID).
			SetAutoReconnect(true).
			SetConnectTimeout(5 * time.Second)
		client := mqtt.NewClient(opts)
		token := client.Connect()
		if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
			if token.Error() != nil {
				return fmt.Errorf("mqtt connect: %w", token.Error())
			}
			return fmt.Errorf("mqtt connect: timeout")
		}
		c.mqttClient = client
		c.connected = true
		return nil
	default:
		return fmt.Errorf("unknown messaging backend: %s", c.cfg.Backend)
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.kafkaWriter != nil {
		c.kafkaWriter.Close()
		c.kafkaWriter = nil
	}
	if c.mqttClient != nil {
		c.mqttClient.Disconnect(250)
		c.mqttClient = nil
	}
	c.connected = false
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return false
	}
	if c.mqttClient != nil {
		return c.mqttClient.IsConnected()
	}
	return true
}

// Reconfigure reconnects with the current config.
func (c *Client) Reconfigure(cfg *config.MessagingConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	c.cfg = cfg
	return c.connectLocked()
}

// Publish sends one message. Failures are returned, not retried here; the
// outbox drainer owns retry.
func (c *Client) Publish(topic string, data []byte) error {
	c.mu.Lock()
	writer := c.kafkaWriter
	mq := c.mqttClient
	c.mu.Unlock()

	switch {
	case writer != nil:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return writer.WriteMessages(ctx, kafka.Message{Topic: topic, Value: data})
	case mq != nil:
		token := mq.Publish(topic, 1, false, data)
		if !token.WaitTimeout(10*time.Second) || token.Error() != nil {
			if token.Error() != nil {
				return token.Error()
			}
			return fmt.Errorf("mqtt publish: timeout")
		}
		return nil
	default:
		return fmt.Errorf("messaging not connected")
	}
}
