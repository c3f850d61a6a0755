package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartSlotConsumer connects to RabbitMQ, declares the slots.activity
// queue, and consumes events into logs/slots.log, one line per change.
// It runs a reconnect loop with backoff and keeps running for the life of
// the process; processing errors are logged and the offending message is
// rejected without requeue so the loop never spins on a bad payload.
func StartSlotConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("slot-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("slot-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("slot-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(slotQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(slotQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("slot-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var ev SlotEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "slots.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Slot %s | owner=%q | room=%q | date=%s | slot=%d\n",
		ev.At, ev.Action, ev.Owner, ev.Room, ev.Date, ev.Slot)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
