package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

var _ account.Repository = (*AccountGormRepository)(nil)

// --------------------------------------------------
// Roles
// --------------------------------------------------

func (r *AccountGormRepository) ListRoles(
	ctx context.Context,
	userID uuid.UUID,
) ([]roles.Role, error) {

	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role", &names).Error; err != nil {
		return nil, err
	}

	out := make([]roles.Role, 0, len(names))
	for _, n := range names {
		if role, ok := roles.Parse(n); ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *AccountGormRepository) GrantRole(
	ctx context.Context,
	userID uuid.UUID,
	role roles.Role,
) (bool, error) {

	row := models.UserRole{UserID: userID, Role: string(role)}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AccountGormRepository) RevokeRole(
	ctx context.Context,
	userID uuid.UUID,
	role roles.Role,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, string(role)).
		Delete(&models.UserRole{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AccountGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) GetProfile(
	ctx context.Context,
	id uuid.UUID,
) (*models.Profile, error) {

	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AccountGormRepository) CreateAccount(
	ctx context.Context,
	user *models.User,
	profile *models.Profile,
	role roles.Role,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile.ID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		return tx.Create(&models.UserRole{
			UserID: user.ID,
			Role:   string(role),
		}).Error
	})
}

func (r *AccountGormRepository) UpdatePasswordHash(
	ctx context.Context,
	userID uuid.UUID,
	hash string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *AccountGormRepository) ListUsers(ctx context.Context) ([]account.UserSummary, error) {
	db := r.db.WithContext(ctx)

	var profiles []models.Profile
	if err := db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []account.UserSummary{}, nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	emails := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	var rows []models.UserRole
	if err := db.Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	sets := make(map[uuid.UUID]roles.Set, len(profiles))
	for _, row := range rows {
		role, ok := roles.Parse(row.Role)
		if !ok {
			continue
		}
		if sets[row.UserID] == nil {
			sets[row.UserID] = roles.NewSet()
		}
		sets[row.UserID][role] = struct{}{}
	}

	out := make([]account.UserSummary, 0, len(profiles))
	for _, p := range profiles {
		set := sets[p.ID]
		out = append(out, account.UserSummary{
			ID:        p.ID,
			Email:     emails[p.ID],
			FullName:  p.FullName,
			Phone:     p.Phone,
			CreatedAt: p.CreatedAt,
			IsAdmin:   set.IsAdmin(),
			Roles:     set.Strings(),
		})
	}
	return out, nil
}

func (r *AccountGormRepository) DeleteUser(
	ctx context.Context,
	userID uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Profile{}, "id = ?", userID).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
