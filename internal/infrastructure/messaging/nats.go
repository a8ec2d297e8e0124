package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// Publisher is the slice of *nats.Conn the notifier needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type NATSNotifier struct {
	pub    Publisher
	logger *zap.Logger
}

// Connect dials the server and keeps reconnecting in the background, so a
// broker outage never blocks session startup.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("geocrop"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

func NewNATSNotifier(pub Publisher, logger *zap.Logger) *NATSNotifier {
	return &NATSNotifier{pub: pub, logger: logger}
}

func (n *NATSNotifier) SelectionFinalized(_ context.Context, sessionID uuid.UUID, box valueobject.ExtentBox, targets []*entity.CropTarget) error {
	return n.publish(selectionSubject(sessionID), newSelectionEvent(sessionID, box, targets))
}

func (n *NATSNotifier) SelectionCleared(_ context.Context, sessionID uuid.UUID) error {
	return n.publish(selectionSubject(sessionID), SelectionEvent{
		SessionID: sessionID,
		Cleared:   true,
		At:        time.Now().UTC(),
	})
}

func (n *NATSNotifier) ExportCompleted(_ context.Context, report *entity.ExportReport) error {
	return n.publish(exportSubject(report.SessionID), newExportEvent(report))
}

func (n *NATSNotifier) publish(subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", subject, err)
	}
	if err := n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	n.logger.Debug("event published", zap.String("subject", subject), zap.Int("bytes", len(data)))
	return nil
}
