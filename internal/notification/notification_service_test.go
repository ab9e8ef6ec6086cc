package notification_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dhruv2311-dot/odoo-gcet/internal/notification"
	notificationerrors "github.com/dhruv2311-dot/odoo-gcet/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepository struct {
	findAllByUserFn func(ctx context.Context, userID string) ([]notification.Notification, error)
	countUnreadFn   func(ctx context.Context, userID string) (int64, error)
	markReadFn      func(ctx context.Context, userID string, ids []string) (int64, error)
	markAllReadFn   func(ctx context.Context, userID string) (int64, error)
	deleteFn        func(ctx context.Context, userID, id string) (int64, error)
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return nil
}

func (f *fakeNotificationRepository) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	return nil
}

func (f *fakeNotificationRepository) FindAllByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, userID, ids)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, id)
	}
	return 0, nil
}

func TestNotificationService_ListMine(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepository{}
	svc := notification.NewService(repo)

	userID := uuid.New().String()
	link := "/leave"
	repo.findAllByUserFn = func(ctx context.Context, gotUserID string) ([]notification.Notification, error) {
		assert.Equal(t, userID, gotUserID)
		return []notification.Notification{
			{
				ID:      uuid.New(),
				UserID:  uuid.MustParse(userID),
				Type:    notification.TypeLeaveStatus,
				Title:   "Leave Approved",
				Message: "Your leave has been approved.",
				Link:    &link,
			},
		}, nil
	}

	rows, err := svc.ListMine(ctx, userID)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Leave Approved", rows[0].Title)
		assert.Equal(t, notification.TypeLeaveStatus, rows[0].Type)
		if assert.NotNil(t, rows[0].Link) {
			assert.Equal(t, link, *rows[0].Link)
		}
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepository{}
	svc := notification.NewService(repo)

	userID := uuid.New().String()

	repo.markReadFn = func(ctx context.Context, gotUserID string, ids []string) (int64, error) {
		return int64(len(ids)), nil
	}
	updated, err := svc.MarkRead(ctx, userID, []string{uuid.New().String(), uuid.New().String()})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	_, err = svc.MarkRead(ctx, userID, []string{"not-a-uuid"})
	assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)

	// Rows that belong to someone else never match the scoped UPDATE.
	repo.markReadFn = func(ctx context.Context, gotUserID string, ids []string) (int64, error) {
		return 0, nil
	}
	_, err = svc.MarkRead(ctx, userID, []string{uuid.New().String()})
	assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
}

func TestNotificationService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepository{}
	svc := notification.NewService(repo)

	userID := uuid.New().String()

	repo.deleteFn = func(ctx context.Context, gotUserID, id string) (int64, error) {
		return 1, nil
	}
	assert.NoError(t, svc.Delete(ctx, userID, uuid.New().String()))

	assert.ErrorIs(t, svc.Delete(ctx, userID, "not-a-uuid"), notificationerrors.ErrInvalidNotificationID)

	repo.deleteFn = func(ctx context.Context, gotUserID, id string) (int64, error) {
		return 0, nil
	}
	assert.ErrorIs(t, svc.Delete(ctx, userID, uuid.New().String()), notificationerrors.ErrNotificationNotFound)
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepository{}
	svc := notification.NewService(repo)

	repo.countUnreadFn = func(ctx context.Context, userID string) (int64, error) {
		return 7, nil
	}
	count, err := svc.UnreadCount(ctx, uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
