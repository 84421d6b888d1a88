package catalogRepo

import "mountify/models"

// CatalogRepository serves the service catalog and coupons.
type CatalogRepository interface {
	ListServices(visibleOnly bool) ([]models.Service, error)
	GetServiceByID(serviceID string) (*models.Service, error)
	UpsertService(svc *models.Service) error
	GetCouponByCode(code string) (*models.Coupon, error)
}
