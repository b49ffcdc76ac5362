package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLog(ctx context.Context, log *NotificationLog) error
	UpdateLogStatus(ctx context.Context, id uint, status string, errMsg *string) error

	CreateInApp(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id, userID uint) error

	UpsertDeviceToken(ctx context.Context, token *FCMDeviceToken) error
	DeactivateDeviceToken(ctx context.Context, userID uint, deviceToken string) error
	ActiveTokensForUsers(ctx context.Context, userIDs []uint) ([]string, error)
	DeactivateTokens(ctx context.Context, tokens []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) UpdateLogStatus(ctx context.Context, id uint, status string, errMsg *string) error {
	return r.db.WithContext(ctx).Model(&NotificationLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "error": errMsg}).Error
}

func (r *repository) CreateInApp(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	if limit <= 0 {
		limit = 50
	}
	var items []InAppNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) MarkInAppAsRead(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpsertDeviceToken(ctx context.Context, token *FCMDeviceToken) error {
	var existing FCMDeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND device_token = ?", token.UserID, token.DeviceToken).
		First(&existing).Error
	if err == nil {
		existing.IsActive = true
		existing.DeviceType = token.DeviceType
		existing.DeviceName = token.DeviceName
		existing.LastUsedAt = time.Now()
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	token.IsActive = true
	token.LastUsedAt = time.Now()
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repository) DeactivateDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return r.db.WithContext(ctx).Model(&FCMDeviceToken{}).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Update("is_active", false).Error
}

func (r *repository) ActiveTokensForUsers(ctx context.Context, userIDs []uint) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var tokens []string
	err := r.db.WithContext(ctx).Model(&FCMDeviceToken{}).
		Where("user_id IN ? AND is_active = TRUE", userIDs).
		Pluck("device_token", &tokens).Error
	return tokens, err
}

func (r *repository) DeactivateTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&FCMDeviceToken{}).
		Where("device_token IN ?", tokens).
		Update("is_active", false).Error
}
