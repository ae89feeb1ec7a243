package messaging

import (
	"context"

	"github.com/feral-file/band-ledger/internal/domain"
)

// Publisher defines the interface for publishing committed ledger events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a ledger event
	PublishEvent(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
}
