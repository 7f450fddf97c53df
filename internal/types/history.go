package types

import (
	"time"
)

// Scan types recorded in history.
const (
	ScanTypeImage    = "image"
	ScanTypeAkinator = "akinator"
	ScanTypeBarcode  = "barcode"
)

// ScanRecord is one completed medicine identification.
type ScanRecord struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID       string    `gorm:"index;not null;column:device_id" json:"-"`
	MedicineID     string    `gorm:"not null;column:medicine_id" json:"medicine_id"`
	MedicineName   string    `gorm:"not null;column:medicine_name" json:"medicine_name"`
	MedicineNameAr string    `gorm:"column:medicine_name_ar" json:"medicine_name_ar,omitempty"`
	ScanType       string    `gorm:"not null;column:scan_type" json:"scan_type"`
	Confidence     float64   `gorm:"not null;column:confidence" json:"confidence"`
	CreatedAt      time.Time `gorm:"not null" json:"timestamp"`
}

func (ScanRecord) TableName() string { return "scan_records" }

// Favorite is a bookmarked medicine.
type Favorite struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID       string    `gorm:"index;not null;column:device_id" json:"-"`
	MedicineID     string    `gorm:"not null;column:medicine_id" json:"medicine_id"`
	MedicineName   string    `gorm:"not null;column:medicine_name" json:"medicine_name"`
	MedicineNameAr string    `gorm:"column:medicine_name_ar" json:"medicine_name_ar,omitempty"`
	Notes          string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }

// Reminder frequencies.
const (
	FrequencyOnceDaily       = "once_daily"
	FrequencyTwiceDaily      = "twice_daily"
	FrequencyThreeTimesDaily = "three_times_daily"
	FrequencyFourTimesDaily  = "four_times_daily"
	FrequencyAsNeeded        = "as_needed"
	FrequencyCustom          = "custom"
)

// Reminder is a medication schedule entry.
type Reminder struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID     string     `gorm:"index;not null;column:device_id" json:"-"`
	MedicineID   string     `gorm:"not null;column:medicine_id" json:"medicine_id"`
	MedicineName string     `gorm:"not null;column:medicine_name" json:"medicine_name"`
	Dosage       string     `gorm:"not null;column:dosage" json:"dosage"`
	Frequency    string     `gorm:"not null;column:frequency" json:"frequency"`
	Times        []string   `gorm:"serializer:json;column:times" json:"times"`
	StartDate    time.Time  `gorm:"not null;column:start_date" json:"start_date"`
	EndDate      *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	Notes        string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"-"`
}

func (Reminder) TableName() string { return "reminders" }
