// internal/repository/user.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryIface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]*model.User, error)                                    // Get all users
	FindAllPaginated(ctx context.Context, offset, limit int) ([]*model.User, int64, error) // Get users with pagination
	FindReportIDs(ctx context.Context, managerIDs []uuid.UUID) ([]uuid.UUID, error)        // Direct reports of any of the managers
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, wrapNotFound(result.Error, domain.ErrUserNotFound, "find user")
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		return nil, wrapNotFound(result.Error, domain.ErrUserNotFound, "find user")
	}
	return &user, nil
}

// FindByIDs returns the users among ids that exist, in no particular order.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	var users []*model.User
	if len(ids) == 0 {
		return users, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find users: %w", result.Error)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Omit("Team").Save(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

// FindAll returns all users
func (r *UserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	result := r.db.WithContext(ctx).Order("created_at").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all users: %w", result.Error)
	}
	return users, nil
}

// FindAllPaginated returns a paginated list of users
func (r *UserRepository) FindAllPaginated(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	var users []*model.User
	var count int64

	// Get total count
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Get paginated users
	result := r.db.WithContext(ctx).Order("created_at").Offset(offset).Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find paginated users: %w", result.Error)
	}

	return users, count, nil
}

// FindReportIDs returns the ids of users whose manager_id is one of managerIDs.
func (r *UserRepository) FindReportIDs(ctx context.Context, managerIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if len(managerIDs) == 0 {
		return ids, nil
	}
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("manager_id IN ?", managerIDs).
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find direct reports: %w", result.Error)
	}
	return ids, nil
}
