// Package output sends placed orders to downstream sinks and exports order
// history to files.
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/foodstore/internal/models"
)

// OrderPlacedEvent is the message published for every acknowledged order.
type OrderPlacedEvent struct {
	EventType      string  `json:"eventType"`
	OrderID        string  `json:"orderId"`
	DraftID        string  `json:"draftId"`
	RestaurantID   string  `json:"restaurantId"`
	ItemCount      int     `json:"itemCount"`
	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"deliveryFee"`
	ServiceFee     float64 `json:"serviceFee"`
	Total          float64 `json:"total"`
	PaymentMethod  string  `json:"paymentMethod"`
	DeliveryOption string  `json:"deliveryOption"`
	City           string  `json:"city"`
	Timestamp      int64   `json:"timestamp"`
}

func NewOrderPlacedEvent(placed models.PlacedOrder) OrderPlacedEvent {
	d := placed.Draft
	count := 0
	for _, item := range d.Items {
		count += item.Quantity
	}
	return OrderPlacedEvent{
		EventType:      "order_placed",
		OrderID:        placed.Reference(),
		DraftID:        d.ID,
		RestaurantID:   d.RestaurantID,
		ItemCount:      count,
		Subtotal:       d.Totals.Subtotal,
		DeliveryFee:    d.Totals.DeliveryFee,
		ServiceFee:     d.Totals.ServiceFee,
		Total:          d.Totals.Total,
		PaymentMethod:  d.PaymentMethod.Type,
		DeliveryOption: d.DeliveryOption.Value,
		City:           d.DeliveryAddress.City,
		Timestamp:      placed.PlacedAt.Unix(),
	}
}

type KafkaRecorder struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewKafkaRecorder(config *models.Config, logger *slog.Logger) (*KafkaRecorder, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	brokerList := strings.Split(config.KafkaBrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	logger.Info("kafka producer created", "brokers", brokerList, "topic", config.KafkaTopic)
	return NewKafkaRecorderWithProducer(producer, config.KafkaTopic, logger), nil
}

func NewKafkaRecorderWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaRecorder{producer: producer, topic: topic, logger: logger}
}

// RecordOrder publishes the order keyed by its reference.
func (k *KafkaRecorder) RecordOrder(_ context.Context, placed models.PlacedOrder) error {
	if k.producer == nil {
		return errors.New("kafka producer is closed")
	}
	msg, err := json.Marshal(NewOrderPlacedEvent(placed))
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(placed.Reference()),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		return fmt.Errorf("failed to send order %s to topic %s: %w", placed.Reference(), k.topic, err)
	}
	k.logger.Debug("order event published", "order", placed.Reference(), "partition", partition, "offset", offset)
	return nil
}

func (k *KafkaRecorder) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
