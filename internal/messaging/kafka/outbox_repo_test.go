package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/events"
	"github.com/dhruv2311-dot/odoo-gcet/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func relayableEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     uuid.New().String(),
		AggregateType: "payroll",
		AggregateID:   uuid.New().String(),
		EventType:     events.PayrollPayslipRequestedTopic,
		Topic:         events.PayrollPayslipRequestedTopic,
		Payload:       []byte(`{"payroll_id":"p-1"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create_WritesThroughCallerTx(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	event := relayableEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db)
	assert.NoError(t, repo.WithTx(tx).Create(ctx, event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Create_RejectsUnrelayableEvents(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	t.Run("missing topic", func(t *testing.T) {
		event := relayableEvent()
		event.Topic = ""
		assert.Error(t, repo.Create(ctx, event))
	})

	t.Run("empty payload", func(t *testing.T) {
		event := relayableEvent()
		event.Payload = nil
		assert.Error(t, repo.Create(ctx, event))
	})

	t.Run("unknown status", func(t *testing.T) {
		event := relayableEvent()
		event.Status = "queued"
		assert.Error(t, repo.Create(ctx, event))
	})

	// Nothing reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending_ScansBatch(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New().String()
	aggregateID := uuid.New().String()
	retryAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "coalesce",
	}).AddRow(
		id, "payroll", aggregateID, events.PayrollPayslipRequestedTopic,
		events.PayrollPayslipRequestedTopic, []byte(`{"payroll_id":"p-1"}`),
		kafka.OutboxStatusFailed, 2, retryAt,
	)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	repo := kafka.NewOutboxRepository(db)
	batch, err := repo.ListPending(ctx, 50)
	assert.NoError(t, err)

	if assert.Len(t, batch, 1) {
		assert.Equal(t, id, batch[0].ID)
		assert.Equal(t, events.PayrollPayslipRequestedTopic, batch[0].Topic)
		assert.Equal(t, kafka.OutboxStatusFailed, batch[0].Status)
		assert.Equal(t, 2, batch[0].RetryCount)
		assert.Equal(t, retryAt, batch[0].NextRetryAt)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed_RecordsReason(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New().String()
	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := kafka.NewOutboxRepository(db)
	assert.NoError(t, repo.MarkFailed(ctx, id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
