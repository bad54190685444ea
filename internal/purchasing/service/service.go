package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/config"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/snapshot"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/storage"
)

// Services bundles the purchasing use cases.
type Services struct {
	Request   *RequestService
	Order     *OrderService
	Invoice   *InvoiceService
	Vendor    *VendorService
	Inventory *InventoryService
}

// NewServices wires repositories, the redis snapshot and object
// storage together. MinIO is optional: with no endpoint configured the
// photo upload endpoint reports the store as unavailable and
// everything else keeps working.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("object storage unavailable", zap.Error(err))
			minioClient = nil
		}
	}
	photos := storage.NewPhotoStore(minioClient, cfg.MinIO.Bucket)
	snap := snapshot.NewStore(rdb, logger)

	return &Services{
		Request:   NewRequestService(repos.Request, snap, photos, logger),
		Order:     NewOrderService(repos.Order, repos.Request, repos.Vendor, logger),
		Invoice:   NewInvoiceService(repos.Invoice, repos.Order, repos.Inventory, logger),
		Vendor:    NewVendorService(repos.Vendor),
		Inventory: NewInventoryService(repos.Inventory),
	}
}
