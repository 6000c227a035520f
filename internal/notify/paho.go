package notify

import (
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	retryInterval  = 5 * time.Second
	disconnectMs   = 1000
)

// Options configure the broker connection.
type Options struct {
	Broker   string
	ClientID string
	Topic    string
}

// PahoPublisher publishes to a real broker, QoS 0, retained.
type PahoPublisher struct {
	client paho.Client
	topic  string
}

// NewPahoPublisher connects to opts.Broker and reconnects automatically afterwards.
func NewPahoPublisher(opts Options) (*PahoPublisher, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt broker not set")
	}
	if opts.Topic == "" {
		opts.Topic = DefaultTopic
	}
	co := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval)

	client := paho.NewClient(co)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timeout", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return &PahoPublisher{client: client, topic: opts.Topic}, nil
}

// Publish sends payload and waits for the client to hand it off.
func (p *PahoPublisher) Publish(payload []byte) error {
	token := p.client.Publish(p.topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return errors.New("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() error {
	p.client.Disconnect(disconnectMs)
	return nil
}
