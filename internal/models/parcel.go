package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Parcel struct {
	bun.BaseModel `bun:"table:parcels"`

	ID             string    `bun:"id,pk" json:"_id"`
	TrackingID     string    `bun:"tracking_id" json:"tracking_id"`
	CreatedBy      string    `bun:"created_by" json:"created_by"`
	Title          string    `bun:"title" json:"title"`
	Type           string    `bun:"type" json:"type"`
	SenderName     string    `bun:"sender_name" json:"sender_name,omitempty"`
	SenderRegion   string    `bun:"sender_region" json:"sender_region,omitempty"`
	ReceiverName   string    `bun:"receiver_name" json:"receiver_name,omitempty"`
	ReceiverRegion string    `bun:"receiver_region" json:"receiver_region,omitempty"`
	Weight         float64   `bun:"weight" json:"weight,omitempty"`
	Cost           float64   `bun:"cost" json:"cost,omitempty"`
	Label          []byte    `bun:"label" json:"label,omitempty"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"createdAt"`
}
