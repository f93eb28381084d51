package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// Config параметры подключения к MQTT брокеру
type Config struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

// MQTTNotifier публикует изменения бронирований в топик техника
type MQTTNotifier struct {
	cli    pahoClient
	prefix string
	qos    byte
	log    Logger
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewMQTTNotifier подключается к брокеру
func NewMQTTNotifier(cfg Config, log Logger) (*MQTTNotifier, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		log.Info("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Error("MQTT connection lost: %v", err)
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, token.Error())
	}

	return &MQTTNotifier{
		cli:    cli,
		prefix: strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:    cfg.QoS,
		log:    log,
	}, nil
}

// Topic возвращает топик техника
func (n *MQTTNotifier) Topic(technicianID string) string {
	return fmt.Sprintf("%s/technicians/%s/bookings", n.prefix, technicianID)
}

// BookingChanged публикует событие. Ошибка только логируется вызывающим.
func (n *MQTTNotifier) BookingChanged(ctx context.Context, event BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	topic := n.Topic(event.TechnicianID)
	token := n.cli.Publish(topic, n.qos, false, payload)

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w: timeout on %s", ErrPublish, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, topic, err)
	}

	n.log.Info("Published %s event for booking=%s to %s", event.Type, event.BookingID, topic)
	return nil
}

// Close отключается от брокера
func (n *MQTTNotifier) Close() {
	if n.cli.IsConnected() {
		n.cli.Disconnect(250)
	}
}

// NopNotifier используется, когда MQTT выключен
type NopNotifier struct{}

func (NopNotifier) BookingChanged(context.Context, BookingEvent) error { return nil }

func (NopNotifier) Close() {}
