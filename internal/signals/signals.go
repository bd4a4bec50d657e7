// Package signals : синхронная шина доменных событий заявок на доступ и секретных ссылок.
//
// Получатели вызываются в порядке регистрации, в горутине отправителя.
// Первая ошибка получателя прерывает цепочку и возвращается отправителю.
package signals

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Name : имя сигнала
type Name string

const (
	RequestCreated   Name = "request-created"
	RequestConfirmed Name = "request-confirmed"
	RequestAccepted  Name = "request-accepted"
	RequestRejected  Name = "request-rejected"
	LinkCreated      Name = "link-created"
	LinkRevoked      Name = "link-revoked"
)

// Event : сигнал вместе с отправителем и именованными аргументами.
// Message и ExpiresAt заполняются только для request-accepted и request-rejected
type Event struct {
	Name      Name
	Sender    any
	Message   string
	ExpiresAt *time.Time
}

// Receiver : обработчик сигнала
type Receiver func(ctx context.Context, event Event) error

type registration struct {
	name     string
	receiver Receiver
}

type Bus struct {
	mu        sync.RWMutex
	receivers map[Name][]registration
}

func NewBus() *Bus {
	return &Bus{receivers: make(map[Name][]registration)}
}

// Connect : подписывает получателя на сигнал, порядок подписки = порядок вызова
func (b *Bus) Connect(signal Name, receiverName string, receiver Receiver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receivers[signal] = append(b.receivers[signal], registration{name: receiverName, receiver: receiver})
}

// Send : синхронно вызывает получателей сигнала
func (b *Bus) Send(ctx context.Context, event Event) error {
	b.mu.RLock()
	receivers := append([]registration(nil), b.receivers[event.Name]...)
	b.mu.RUnlock()

	SignalsEmitted.WithLabelValues(string(event.Name)).Inc()

	for _, r := range receivers {
		if err := r.receiver(ctx, event); err != nil {
			ReceiverFailures.WithLabelValues(string(event.Name), r.name).Inc()
			log.Printf("[Signals] получатель %s сигнала %s завершился с ошибкой: %v", r.name, event.Name, err)
			return fmt.Errorf("%s: %w", r.name, err)
		}
	}
	return nil
}

// SendAll : отправляет события по очереди, останавливаясь на первой ошибке
func (b *Bus) SendAll(ctx context.Context, events []Event) error {
	for _, event := range events {
		if err := b.Send(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
