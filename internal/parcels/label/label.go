package label

import (
	"github.com/skip2/go-qrcode"
)

// Generate renders the QR tracking label stored on every parcel. The
// code encodes the tracking id so a scan at any hub resolves the
// shipment without a lookup by database id.
func Generate(trackingID string) ([]byte, error) {
	return qrcode.Encode(trackingID, qrcode.Medium, 256)
}
