package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/data/repos/history"
	"github.com/clintwin/clintwin-backend/internal/platform/dbctx"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/types"
)

var frequencyLabels = map[string]map[string]string{
	types.FrequencyOnceDaily:       {"en": "Once daily", "ar": "مرة واحدة يومياً"},
	types.FrequencyTwiceDaily:      {"en": "Twice daily", "ar": "مرتان يومياً"},
	types.FrequencyThreeTimesDaily: {"en": "Three times daily", "ar": "ثلاث مرات يومياً"},
	types.FrequencyFourTimesDaily:  {"en": "Four times daily", "ar": "أربع مرات يومياً"},
	types.FrequencyAsNeeded:        {"en": "As needed", "ar": "عند الحاجة"},
	types.FrequencyCustom:          {"en": "Custom schedule", "ar": "جدول مخصص"},
}

// FrequencyLabel localizes a reminder frequency. Unknown frequencies fall
// back to the raw value.
func FrequencyLabel(frequency, lang string) string {
	labels, ok := frequencyLabels[frequency]
	if !ok {
		return frequency
	}
	label := labels[lang]
	if label == "" {
		label = labels["en"]
	}
	return label
}

// ScanView is one history entry with localized display fields.
type ScanView struct {
	types.ScanRecord
	DisplayName string `json:"display_name"`
}

// FavoriteView is one bookmark with localized display fields.
type FavoriteView struct {
	types.Favorite
	DisplayName string `json:"display_name"`
}

// ReminderView is one reminder with its localized frequency label.
type ReminderView struct {
	types.Reminder
	FrequencyLabel string `json:"frequency_label"`
}

// RecordScanInput is the payload for saving one identification to history.
type RecordScanInput struct {
	MedicineID string  `json:"medicine_id" binding:"required"`
	ScanType   string  `json:"scan_type" binding:"required"`
	Confidence float64 `json:"confidence"`
}

// CreateReminderInput is the payload for scheduling a reminder.
type CreateReminderInput struct {
	MedicineID string     `json:"medicine_id" binding:"required"`
	Dosage     string     `json:"dosage" binding:"required"`
	Frequency  string     `json:"frequency" binding:"required"`
	Times      []string   `json:"times"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Notes      string     `json:"notes"`
}

// HistoryService manages per-device scan history, favorites, and reminders.
// Devices are anonymous; the caller supplies a device identifier and every
// query is scoped to it.
type HistoryService struct {
	log       *logger.Logger
	catalog   *catalog.Store
	scans     history.ScanRepo
	favorites history.FavoriteRepo
	reminders history.ReminderRepo
}

func NewHistoryService(
	cat *catalog.Store,
	scans history.ScanRepo,
	favorites history.FavoriteRepo,
	reminders history.ReminderRepo,
	log *logger.Logger,
) *HistoryService {
	return &HistoryService{
		log:       log.With("service", "HistoryService"),
		catalog:   cat,
		scans:     scans,
		favorites: favorites,
		reminders: reminders,
	}
}

func validScanType(t string) bool {
	return t == types.ScanTypeImage || t == types.ScanTypeAkinator || t == types.ScanTypeBarcode
}

// RecordScan saves one identification to the device's history.
func (s *HistoryService) RecordScan(dbc dbctx.Context, deviceID string, in RecordScanInput) (*types.ScanRecord, error) {
	if !validScanType(in.ScanType) {
		return nil, fmt.Errorf("invalid scan type: %s", in.ScanType)
	}
	m, ok := s.catalog.ByID(in.MedicineID)
	if !ok {
		return nil, fmt.Errorf("medicine not found: %s", in.MedicineID)
	}

	row := &types.ScanRecord{
		ID:             uuid.NewString(),
		DeviceID:       deviceID,
		MedicineID:     m.ID,
		MedicineName:   m.Name,
		MedicineNameAr: m.NameArabic,
		ScanType:       in.ScanType,
		Confidence:     in.Confidence,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.scans.Create(dbc, row); err != nil {
		return nil, err
	}
	return row, nil
}

// ListScans returns the device's most recent scans, newest first. The limit
// is clamped to the retention cap.
func (s *HistoryService) ListScans(dbc dbctx.Context, deviceID, scanType string, limit int, lang string) ([]ScanView, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.scans.ListByDevice(dbc, deviceID, scanType, limit)
	if err != nil {
		return nil, err
	}
	views := make([]ScanView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ScanView{ScanRecord: row, DisplayName: localizedName(row.MedicineName, row.MedicineNameAr, lang)})
	}
	return views, nil
}

// ClearScans deletes the device's entire scan history.
func (s *HistoryService) ClearScans(dbc dbctx.Context, deviceID string) error {
	return s.scans.DeleteByDevice(dbc, deviceID)
}

// AddFavorite bookmarks a medicine. Bookmarking the same medicine twice
// returns the existing row with ok=false.
func (s *HistoryService) AddFavorite(dbc dbctx.Context, deviceID, medicineID, notes string) (*types.Favorite, bool, error) {
	m, found := s.catalog.ByID(medicineID)
	if !found {
		return nil, false, fmt.Errorf("medicine not found: %s", medicineID)
	}
	existing, err := s.favorites.GetByMedicine(dbc, deviceID, medicineID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	row := &types.Favorite{
		ID:             uuid.NewString(),
		DeviceID:       deviceID,
		MedicineID:     m.ID,
		MedicineName:   m.Name,
		MedicineNameAr: m.NameArabic,
		Notes:          notes,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.favorites.Create(dbc, row); err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// ListFavorites returns the device's bookmarks, newest first.
func (s *HistoryService) ListFavorites(dbc dbctx.Context, deviceID, lang string) ([]FavoriteView, error) {
	rows, err := s.favorites.ListByDevice(dbc, deviceID)
	if err != nil {
		return nil, err
	}
	views := make([]FavoriteView, 0, len(rows))
	for _, row := range rows {
		views = append(views, FavoriteView{Favorite: row, DisplayName: localizedName(row.MedicineName, row.MedicineNameAr, lang)})
	}
	return views, nil
}

// RemoveFavorite deletes one bookmark; returns false when it did not exist.
func (s *HistoryService) RemoveFavorite(dbc dbctx.Context, deviceID, favoriteID string) (bool, error) {
	return s.favorites.Delete(dbc, deviceID, favoriteID)
}

// CreateReminder schedules a medication reminder.
func (s *HistoryService) CreateReminder(dbc dbctx.Context, deviceID string, in CreateReminderInput) (*types.Reminder, error) {
	if _, ok := frequencyLabels[in.Frequency]; !ok {
		return nil, fmt.Errorf("invalid frequency: %s", in.Frequency)
	}
	m, ok := s.catalog.ByID(in.MedicineID)
	if !ok {
		return nil, fmt.Errorf("medicine not found: %s", in.MedicineID)
	}

	start := time.Now().UTC()
	if in.StartDate != nil {
		start = *in.StartDate
	}
	row := &types.Reminder{
		ID:           uuid.NewString(),
		DeviceID:     deviceID,
		MedicineID:   m.ID,
		MedicineName: m.Name,
		Dosage:       in.Dosage,
		Frequency:    in.Frequency,
		Times:        in.Times,
		StartDate:    start,
		EndDate:      in.EndDate,
		IsActive:     true,
		Notes:        in.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.reminders.Create(dbc, row); err != nil {
		return nil, err
	}
	return row, nil
}

// ListReminders returns the device's reminders in creation order.
func (s *HistoryService) ListReminders(dbc dbctx.Context, deviceID string, activeOnly bool, lang string) ([]ReminderView, error) {
	rows, err := s.reminders.ListByDevice(dbc, deviceID, activeOnly)
	if err != nil {
		return nil, err
	}
	views := make([]ReminderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ReminderView{Reminder: row, FrequencyLabel: FrequencyLabel(row.Frequency, lang)})
	}
	return views, nil
}

// RemoveReminder deletes one reminder; returns false when it did not exist.
func (s *HistoryService) RemoveReminder(dbc dbctx.Context, deviceID, reminderID string) (bool, error) {
	return s.reminders.Delete(dbc, deviceID, reminderID)
}

// ToggleReminder flips a reminder's active flag and returns the updated row,
// or nil when the reminder does not exist.
func (s *HistoryService) ToggleReminder(dbc dbctx.Context, deviceID, reminderID string) (*types.Reminder, error) {
	return s.reminders.Toggle(dbc, deviceID, reminderID)
}

func localizedName(name, nameAr, lang string) string {
	if lang == "ar" && nameAr != "" {
		return nameAr
	}
	return name
}
