package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"alumnidir/internal/model"
)

// InviteRepository defines invite persistence operations.
type InviteRepository interface {
	Create(ctx context.Context, invite *model.Invite) error
	FindByCode(ctx context.Context, code string) (*model.Invite, error)
	List(ctx context.Context) ([]model.Invite, error)
	// MarkUsed flips used from false to true. It reports false when the code is
	// unknown or was already used, so concurrent callers see exactly one winner.
	MarkUsed(ctx context.Context, code string, at time.Time) (bool, error)
}

type inviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new invite repository.
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

// Create creates a new invite.
func (r *inviteRepository) Create(ctx context.Context, invite *model.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

// FindByCode finds an invite by code.
func (r *inviteRepository) FindByCode(ctx context.Context, code string) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// List returns every invite, newest first.
func (r *inviteRepository) List(ctx context.Context) ([]model.Invite, error) {
	var invites []model.Invite
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// MarkUsed performs the compare-and-swap on the used flag.
func (r *inviteRepository) MarkUsed(ctx context.Context, code string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Invite{}).
		Where("code = ? AND used = ?", code, false).
		Updates(map[string]interface{}{"used": true, "used_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
