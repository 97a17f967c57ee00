package kafka

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"

	"feeportal/ledger"
)

const TopicPaymentPaid = "payment.paid"

type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(broker string) *Producer {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	var producer sarama.SyncProducer
	var err error

	for i := 1; i <= 10; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Println("Kafka producer initialized")
			return &Producer{producer: producer}
		}

		log.Printf("Waiting for Kafka... (%d/10) Error: %v", i, err)
		time.Sleep(5 * time.Second)
	}

	log.Fatalf("Failed to start Kafka producer after retries: %v", err)
	return nil
}

// PublishPaymentPaid emits the event the receipt consumer listens on.
func (p *Producer) PublishPaymentPaid(evt ledger.PaymentPaidEvent) error {
	envelope := map[string]interface{}{
		"event_type": TopicPaymentPaid,
		"data":       evt,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: TopicPaymentPaid,
		Key:   sarama.StringEncoder(evt.OrderID),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return err
	}

	log.Printf("Published payment.paid event order_id=%s", evt.OrderID)
	return nil
}
