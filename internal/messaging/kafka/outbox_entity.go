package kafka

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventRecord is the gorm model behind outbox_events. The
// repository itself speaks raw SQL; this exists for schema migration.
type OutboxEventRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID     string    `gorm:"column:request_id;type:varchar(64)"`
	AggregateType string    `gorm:"column:aggregate_type;type:varchar(50);not null"`
	AggregateID   string    `gorm:"column:aggregate_id;type:uuid;not null"`
	EventType     string    `gorm:"column:event_type;type:varchar(100);not null"`
	Topic         string    `gorm:"type:varchar(100);not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(10);not null;default:'pending';index"`
	RetryCount    int       `gorm:"column:retry_count;not null;default:0"`
	ErrorMessage  *string   `gorm:"column:error_message;type:varchar(500)"`
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxEventRecord) TableName() string {
	return "outbox_events"
}
