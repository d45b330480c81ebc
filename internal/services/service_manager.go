package services

import (
	"context"

	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
	"github.com/isdelr/linkstart-be/internal/repository"
	"github.com/isdelr/linkstart-be/internal/validator"
)

// ServiceManagerProvider defines the interface for owner-scoped service records.
type ServiceManagerProvider interface {
	Create(ctx context.Context, owner, name, publicIP, privateIP string) (models.Service, error)
	List(ctx context.Context, owner string) ([]models.Service, error)
	Delete(ctx context.Context, owner, id string) error
	Count(ctx context.Context, owner string) (int64, error)
}

type createServiceInput struct {
	Name      string `json:"name" validate:"required"`
	PublicIP  string `json:"public_ip" validate:"required"`
	PrivateIP string `json:"private_ip" validate:"required"`
}

// ServiceManager provides business logic for service records. owner is
// always the authenticated subject.
type ServiceManager struct {
	services repository.ServiceRepository
}

// NewServiceManager creates a new ServiceManager.
func NewServiceManager(services repository.ServiceRepository) *ServiceManager {
	return &ServiceManager{services: services}
}

// Create stores a new record for owner. Addresses are kept as given.
func (m *ServiceManager) Create(ctx context.Context, owner, name, publicIP, privateIP string) (models.Service, error) {
	if owner == "" {
		return models.Service{}, common.ErrUnauthenticated
	}
	if err := validator.Struct(createServiceInput{Name: name, PublicIP: publicIP, PrivateIP: privateIP}); err != nil {
		return models.Service{}, err
	}

	svc := models.Service{Owner: owner, Name: name, PublicIP: publicIP, PrivateIP: privateIP}
	if err := m.services.Create(ctx, &svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

func (m *ServiceManager) List(ctx context.Context, owner string) ([]models.Service, error) {
	if owner == "" {
		return nil, common.ErrUnauthenticated
	}
	return m.services.ListByOwner(ctx, owner)
}

func (m *ServiceManager) Delete(ctx context.Context, owner, id string) error {
	if owner == "" {
		return common.ErrUnauthenticated
	}
	return m.services.DeleteByOwner(ctx, owner, id)
}

func (m *ServiceManager) Count(ctx context.Context, owner string) (int64, error) {
	if owner == "" {
		return 0, common.ErrUnauthenticated
	}
	return m.services.CountByOwner(ctx, owner)
}
