package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// DirectoryGormRepository reads the records the core treats as external
// collaborators: operators, businesses, the service catalog and users.
type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Operator
// --------------------------------------------------

func (r *DirectoryGormRepository) GetOperator(
	ctx context.Context,
	id uint,
) (*models.Operator, error) {

	var op models.Operator
	if err := r.db.WithContext(ctx).First(&op, id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *DirectoryGormRepository) GetOperatorByUserID(
	ctx context.Context,
	userID uint,
) (*models.Operator, error) {

	var op models.Operator
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *DirectoryGormRepository) GetBusiness(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *DirectoryGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *DirectoryGormRepository) GetOperatorService(
	ctx context.Context,
	operatorID uint,
	serviceID uint,
) (*models.OperatorService, error) {

	var ovr models.OperatorService
	err := r.db.WithContext(ctx).
		Where("operator_id = ? AND service_id = ?", operatorID, serviceID).
		First(&ovr).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ovr, nil
}

func (r *DirectoryGormRepository) ListServices(
	ctx context.Context,
	businessID uint,
) ([]models.Service, error) {

	var list []models.Service
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *DirectoryGormRepository) CreateService(
	ctx context.Context,
	svc *models.Service,
) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *DirectoryGormRepository) SaveService(
	ctx context.Context,
	svc *models.Service,
) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *DirectoryGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
