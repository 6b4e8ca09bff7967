package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"florist-marketplace/internal/repository"
	"florist-marketplace/internal/storage"
)

const groupID = "order-events-consumer-group"

// Example consumer for the order-events topic. Real subscribers (customer
// notifications, florist dashboards) follow the same shape.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}

	log.Println("Starting order-events consumer...")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          storage.OrderEventsTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	log.Printf("Consumer connected to topic '%s' on brokers %s", storage.OrderEventsTopic, brokers)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping consumer.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var payload repository.OrderEventPayload
			if err := json.Unmarshal(m.Value, &payload); err != nil {
				log.Printf("Skipping malformed event at offset %d: %v", m.Offset, err)
				continue
			}

			fmt.Printf("\n--- ORDER EVENT ---\n")
			fmt.Printf("Event:     %s\n", payload.EventID)
			fmt.Printf("Order:     %s (florist %s, customer %s)\n", payload.OrderID, payload.FloristID, payload.CustomerID)
			if payload.OldStatus != "" {
				fmt.Printf("Status:    %s -> %s\n", payload.OldStatus, payload.NewStatus)
			} else {
				fmt.Printf("Status:    %s\n", payload.NewStatus)
			}
			if payload.Notes != "" {
				fmt.Printf("Notes:     %s\n", payload.Notes)
			}
			fmt.Printf("Occurred:  %s\n", payload.OccurredAt.Format(time.RFC3339))
			fmt.Printf("Offset:    %d\n", m.Offset)
			fmt.Println("--- END EVENT ---")
		}
	}
}
