package parcels

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-parcels/internal/logger"
	"ms-parcels/internal/models"
	"ms-parcels/internal/parcels/label"
	"ms-parcels/internal/utils"
)

type ParcelDBLayer interface {
	CreateParcel(parcel models.Parcel) error
	GetParcelsByOwner(email string) ([]models.Parcel, error)
	GetParcelByID(id string) (*models.Parcel, error)
	DeleteParcel(id string) (int64, error)
}

type EventPublisher interface {
	PublishParcelCreated(parcel models.Parcel) error
	PublishParcelDeleted(id string) error
}

type ParcelService struct {
	DB     ParcelDBLayer
	Events EventPublisher
	Logger *logger.Logger
}

func NewParcelService(db ParcelDBLayer, events EventPublisher, log *logger.Logger) *ParcelService {
	return &ParcelService{DB: db, Events: events, Logger: log}
}

// CreateParcel assigns the id, tracking number and QR label, stores the
// record and emits a created event. Event publishing is best-effort;
// the stored parcel is the source of truth.
func (s *ParcelService) CreateParcel(parcel models.Parcel) (*models.Parcel, error) {
	if parcel.CreatedBy == "" {
		return nil, fmt.Errorf("created_by is required")
	}

	parcel.ID = uuid.New().String()
	if parcel.TrackingID == "" {
		parcel.TrackingID = utils.GenerateTrackingID()
	}
	if parcel.CreatedAt.IsZero() {
		parcel.CreatedAt = time.Now()
	}

	labelBytes, err := label.Generate(parcel.TrackingID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracking label: %w", err)
	}
	parcel.Label = labelBytes

	if err := s.DB.CreateParcel(parcel); err != nil {
		return nil, err
	}

	if s.Events != nil {
		if err := s.Events.PublishParcelCreated(parcel); err != nil && s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish parcel created event: %v", err))
		}
	}
	if s.Logger != nil {
		s.Logger.LogParcel("CREATE", parcel.ID, fmt.Sprintf("tracking %s for %s", parcel.TrackingID, parcel.CreatedBy))
	}

	return &parcel, nil
}

// ListParcels returns the owner's parcels, newest first. There is no
// unscoped variant; the owner filter is required.
func (s *ParcelService) ListParcels(ownerEmail string) ([]models.Parcel, error) {
	if ownerEmail == "" {
		return nil, fmt.Errorf("owner email is required")
	}
	return s.DB.GetParcelsByOwner(ownerEmail)
}

func (s *ParcelService) GetParcel(id string) (*models.Parcel, error) {
	parcel, err := s.DB.GetParcelByID(id)
	if err != nil {
		return nil, fmt.Errorf("parcel %s not found: %w", id, err)
	}
	return parcel, nil
}

// DeleteParcel removes the parcel and reports the affected count.
func (s *ParcelService) DeleteParcel(id string) (int64, error) {
	removed, err := s.DB.DeleteParcel(id)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		if s.Events != nil {
			if err := s.Events.PublishParcelDeleted(id); err != nil && s.Logger != nil {
				s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish parcel deleted event: %v", err))
			}
		}
		if s.Logger != nil {
			s.Logger.LogParcel("DELETE", id, "parcel removed")
		}
	}

	return removed, nil
}
