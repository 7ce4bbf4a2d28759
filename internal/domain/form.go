package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Form is a submitted textile production record: header fields, warp/weft
// line items and mill details. Code holds a PNG data URI of the QR symbol
// pointing at the record's detail page and is written once, at creation.
type Form struct {
	ID         string `json:"_id" gorm:"primaryKey;size:24"`
	AreticalNo string `json:"areticalNo" gorm:"not null"`
	Name       string `json:"name" gorm:"not null"`
	Date       string `json:"date" gorm:"not null"`

	WarpDetails []any `json:"warpDetails" gorm:"serializer:json"`
	WeftDetails []any `json:"weftDetails" gorm:"serializer:json"`

	DyingMillName   string `json:"dyingMillName" gorm:"not null;default:''"`
	FabricsShortage string `json:"fabricsShortage" gorm:"not null;default:''"`

	Code string `json:"code" gorm:"type:text;not null"`

	WeftRate *string `json:"weftRate,omitempty"`
	WarpRate *string `json:"warpRate,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Form) TableName() string {
	return "forms"
}

// FormReplacement carries the field set written by a full update. Rates are
// not part of it; they change only through RatesUpdate.
type FormReplacement struct {
	AreticalNo      string
	Name            string
	Date            string
	WarpDetails     []any
	WeftDetails     []any
	DyingMillName   string
	FabricsShortage string
	Code            string
}

// Apply copies the replacement onto f.
func (r FormReplacement) Apply(f *Form) {
	f.AreticalNo = r.AreticalNo
	f.Name = r.Name
	f.Date = r.Date
	f.WarpDetails = r.WarpDetails
	f.WeftDetails = r.WeftDetails
	f.DyingMillName = r.DyingMillName
	f.FabricsShortage = r.FabricsShortage
	f.Code = r.Code
}

// RatesUpdate is a partial update of the two rates. A rate is written only
// when its Set flag is true; a set rate with a nil value is cleared.
type RatesUpdate struct {
	WarpRate    *string
	WeftRate    *string
	SetWarpRate bool
	SetWeftRate bool
}

func (u RatesUpdate) Empty() bool {
	return !u.SetWarpRate && !u.SetWeftRate
}

// Apply copies the set rates onto f.
func (u RatesUpdate) Apply(f *Form) {
	if u.SetWarpRate {
		f.WarpRate = u.WarpRate
	}
	if u.SetWeftRate {
		f.WeftRate = u.WeftRate
	}
}

// NewFormID allocates an identifier before the record is written, so the
// QR code can reference it.
func NewFormID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidFormID reports whether id is a 24 character hex ObjectID.
func IsValidFormID(id string) bool {
	return primitive.IsValidObjectID(id)
}
