package paystation

import (
	"fmt"
	"time"

	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
)

// Receipt is proof of purchase. Zero value is a receipt for 0 minutes.
type Receipt struct {
	minutes  int
	issuedAt time.Time
}

func newReceipt(minutes int, issuedAt time.Time) Receipt {
	return Receipt{minutes: minutes, issuedAt: issuedAt}
}

// Value is purchased parking time in minutes.
func (r Receipt) Value() int { return r.minutes }
func (r Receipt) IssuedAt() time.Time { return r.issuedAt }
func (r Receipt) ValidUntil() time.Time { return r.issuedAt.Add(time.Duration(r.minutes) * time.Minute) }

func (r Receipt) String() string {
	return fmt.Sprintf("receipt minutes=%d issued=%s until=%s",
		r.minutes, r.issuedAt.UTC().Format(time.RFC3339), r.ValidUntil().UTC().Format(time.RFC3339))
}

// QR renders String() as terminal QR code.
func (r Receipt) QR(border bool) (string, error) {
	qr, err := qrcode.New(r.String(), qrcode.Medium)
	if err != nil {
		return "", errors.Annotate(err, "receipt QR")
	}
	qr.DisableBorder = !border
	return qr.ToString(false), nil
}
