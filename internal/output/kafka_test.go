package output

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedOrder() models.PlacedOrder {
	return models.PlacedOrder{
		Draft: models.OrderDraft{
			ID:           "draft-1",
			RestaurantID: "1",
			Items: []models.CartLineItem{
				{MenuItemID: "101", Name: "Bacalhau à Brás", Price: 14.50, Quantity: 1},
				{MenuItemID: "103", Name: "Pastéis de Nata", Price: 7.50, Quantity: 2},
			},
			DeliveryAddress: models.Address{Street: "Rua Augusta 100", City: "Lisboa", PostalCode: "1100-053"},
			PaymentMethod:   models.PaymentMethods[0],
			DeliveryOption:  models.DeliveryOptions[1],
			Totals:          models.Totals{Subtotal: 29.50, DeliveryFee: 2.50, ServiceFee: 1.00, Total: 33.00},
		},
		Order:    &models.Order{ID: "order-1", RestaurantName: "Taberna Real", Status: models.OrderStatusConfirmed},
		PlacedAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestNewOrderPlacedEvent(t *testing.T) {
	e := NewOrderPlacedEvent(placedOrder())

	assert.Equal(t, "order_placed", e.EventType)
	assert.Equal(t, "order-1", e.OrderID)
	assert.Equal(t, "draft-1", e.DraftID)
	assert.Equal(t, 3, e.ItemCount)
	assert.Equal(t, 33.00, e.Total)
	assert.Equal(t, "mbway", e.PaymentMethod)
	assert.Equal(t, "express", e.DeliveryOption)
	assert.Equal(t, "Lisboa", e.City)
	assert.Equal(t, int64(1714566600), e.Timestamp)
}

func TestKafkaRecorder_RecordOrder(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "order_placed" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order-1" {
			return errors.New("unexpected key " + string(key))
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var e OrderPlacedEvent
		if err := json.Unmarshal(value, &e); err != nil {
			return err
		}
		if e.OrderID != "order-1" || e.Total != 33.00 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	recorder := NewKafkaRecorderWithProducer(producer, "order_placed", nil)

	require.NoError(t, recorder.RecordOrder(context.Background(), placedOrder()))
	require.NoError(t, recorder.Close())
}

func TestKafkaRecorder_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	recorder := NewKafkaRecorderWithProducer(producer, "order_placed", nil)
	err := recorder.RecordOrder(context.Background(), placedOrder())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, recorder.Close())
}

func TestKafkaRecorder_Closed(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	recorder := NewKafkaRecorderWithProducer(producer, "order_placed", nil)
	require.NoError(t, recorder.Close())

	assert.Error(t, recorder.RecordOrder(context.Background(), placedOrder()))
	assert.NoError(t, recorder.Close())
}
