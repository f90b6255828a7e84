package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ UserRepository = (*GormUserRepository)(nil)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "LOWER(username) = LOWER(?)", username)
}

func (r *GormUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *GormUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, changes ProfileChanges) (*models.User, error) {
	updates := make(map[string]interface{})
	if changes.Username != nil {
		updates["username"] = *changes.Username
	}
	if changes.Email != nil {
		updates["email"] = *changes.Email
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateUser
			}
			return nil, fmt.Errorf("failed to update profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}

	return r.FindByID(ctx, id)
}

func (r *GormUserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND (last_login_at IS NULL OR last_login_at < ?)", id, StartOfDay(at)).
		Update("last_login_at", at)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record login: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Already logged in today, or unknown.
	result = r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, ErrUserNotFound
	}
	return false, nil
}

func (r *GormUserRepository) AddCredits(ctx context.Context, id uuid.UUID, delta CreditDelta) (int, error) {
	var credits int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyDelta(tx, id, delta); err != nil {
			return err
		}
		var err error
		credits, err = currentCredits(tx, id)
		return err
	})
	return credits, err
}

func (r *GormUserRepository) SetCredits(ctx context.Context, id uuid.UUID, credits int) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("credits", credits)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *GormUserRepository) AddSavedPost(ctx context.Context, id uuid.UUID, postID string, delta CreditDelta) (bool, int, error) {
	var (
		added   bool
		credits int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if credits, err = currentCredits(tx, id); err != nil {
			return err
		}

		saved := models.SavedPost{ID: uuid.New(), UserID: id, PostID: postID}
		result := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&saved)
		if result.Error != nil {
			return fmt.Errorf("failed to save post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		added = true
		if err := applyDelta(tx, id, delta); err != nil {
			return err
		}
		credits, err = currentCredits(tx, id)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return added, credits, nil
}

func (r *GormUserRepository) RemoveSavedPost(ctx context.Context, id uuid.UUID, postID string) (int, error) {
	var credits int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if credits, err = currentCredits(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND post_id = ?", id, postID).Delete(&models.SavedPost{}).Error; err != nil {
			return fmt.Errorf("failed to remove saved post: %w", err)
		}
		return nil
	})
	return credits, err
}

func (r *GormUserRepository) SavedPosts(ctx context.Context, id uuid.UUID) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).
		Where("user_id = ?", id).
		Order("created_at ASC").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved posts: %w", err)
	}
	return ids, nil
}

func (r *GormUserRepository) SetRedditToken(ctx context.Context, id uuid.UUID, token *RedditToken) error {
	updates := map[string]interface{}{
		"reddit_access_token":  nil,
		"reddit_refresh_token": nil,
		"reddit_token_expiry":  nil,
	}
	if token != nil {
		updates["reddit_access_token"] = token.AccessToken
		if token.RefreshToken != "" {
			updates["reddit_refresh_token"] = token.RefreshToken
		}
		if !token.Expiry.IsZero() {
			updates["reddit_token_expiry"] = token.Expiry
		}
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to store reddit token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *GormUserRepository) CreateReport(ctx context.Context, report *models.PostReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *GormUserRepository) ListReports(ctx context.Context, filter ReportFilter) ([]models.PostReport, int64, error) {
	var reports []models.PostReport
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PostReport{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	if err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

func (r *GormUserRepository) UpdateReport(ctx context.Context, id uuid.UUID, status, adminNote string) error {
	result := r.db.WithContext(ctx).Model(&models.PostReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"admin_note": adminNote,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *GormUserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func applyDelta(tx *gorm.DB, id uuid.UUID, delta CreditDelta) error {
	result := tx.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"credits":            gorm.Expr("credits + ?", delta.Credits),
		"total_interactions": gorm.Expr("total_interactions + ?", delta.Interactions),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func currentCredits(tx *gorm.DB, id uuid.UUID) (int, error) {
	var user models.User
	if err := tx.Select("credits").Where("id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to read credits: %w", err)
	}
	return user.Credits, nil
}
