package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// Age category identifiers.
const (
	AgeNeonate    = "neonate"
	AgeInfant     = "infant"
	AgeChild      = "child"
	AgeAdolescent = "adolescent"
	AgeAdult      = "adult"
	AgeElderly    = "elderly"
)

type ageBand struct {
	category string
	min, max float64
}

// Ordered so the first matching band wins.
var ageBands = []ageBand{
	{AgeNeonate, 0, 0.083},
	{AgeInfant, 0.083, 1},
	{AgeChild, 1, 12},
	{AgeAdolescent, 12, 18},
	{AgeAdult, 18, 65},
	{AgeElderly, 65, 999},
}

// AgeCategory maps an age in years onto a dosing category.
func AgeCategory(ageYears float64) string {
	for _, band := range ageBands {
		if ageYears >= band.min && ageYears < band.max {
			return band.category
		}
	}
	return AgeAdult
}

type dosingRule struct {
	childMgPerKg  float64
	childMaxDaily float64 // mg/kg/day
	adultSingle   string
	adultMaxDaily float64
	frequency     string
	frequencyAr   string
	warning       string
	warningAr     string
}

// Weight-based pediatric rules keyed by category then generic-name fragment.
var dosingRules = map[string]map[string]dosingRule{
	"pain_relief": {
		"paracetamol": {
			childMgPerKg:  15,
			childMaxDaily: 60,
			adultSingle:   "500-1000mg",
			adultMaxDaily: 4000,
			frequency:     "every 4-6 hours",
			frequencyAr:   "كل 4-6 ساعات",
		},
		"ibuprofen": {
			childMgPerKg:  10,
			childMaxDaily: 40,
			adultSingle:   "200-400mg",
			adultMaxDaily: 1200,
			frequency:     "every 6-8 hours",
			frequencyAr:   "كل 6-8 ساعات",
			warning:       "Take with food",
			warningAr:     "يؤخذ مع الطعام",
		},
	},
	"antibiotic": {
		"amoxicillin": {
			childMgPerKg:  25,
			childMaxDaily: 80,
			adultSingle:   "500mg",
			adultMaxDaily: 3000,
			frequency:     "every 8 hours",
			frequencyAr:   "كل 8 ساعات",
		},
	},
}

// DosageResult is a dosage recommendation for one patient profile.
type DosageResult struct {
	Success               bool     `json:"success"`
	MedicineID            string   `json:"medicine_id"`
	MedicineName          string   `json:"medicine_name"`
	MedicineNameAr        string   `json:"medicine_name_ar"`
	AgeCategory           string   `json:"age_category"`
	IsPediatric           bool     `json:"is_pediatric"`
	RecommendedDose       string   `json:"recommended_dose"`
	RecommendedDoseAr     string   `json:"recommended_dose_ar"`
	CalculationMethod     string   `json:"calculation_method"`
	CalculatedSingleDoseMg float64 `json:"calculated_single_dose_mg,omitempty"`
	MaxDailyDoseMg        float64  `json:"max_daily_dose_mg,omitempty"`
	Frequency             string   `json:"frequency,omitempty"`
	FrequencyAr           string   `json:"frequency_ar,omitempty"`
	Warning               string   `json:"warning,omitempty"`
	WarningAr             string   `json:"warning_ar,omitempty"`
	Warnings              []string `json:"warnings"`
	WarningsAr            []string `json:"warnings_ar"`
	Contraindications     []string `json:"contraindications"`
}

// DosageService calculates weight-based and age-appropriate doses.
type DosageService struct {
	log     *logger.Logger
	catalog *catalog.Store
}

func NewDosageService(cat *catalog.Store, log *logger.Logger) *DosageService {
	return &DosageService{log: log.With("service", "DosageService"), catalog: cat}
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }

// Calculate produces a dosage recommendation. Pediatric patients get a
// weight-based dose when a rule matches the medicine's generic name,
// otherwise the catalog's text dosage is echoed.
func (s *DosageService) Calculate(medicineID string, weightKg, ageYears *float64, conditions []string) (*DosageResult, error) {
	m, ok := s.catalog.ByID(medicineID)
	if !ok {
		return nil, fmt.Errorf("medicine not found: %s", medicineID)
	}

	category := AgeAdult
	if ageYears != nil {
		category = AgeCategory(*ageYears)
	}
	pediatric := category == AgeNeonate || category == AgeInfant || category == AgeChild || category == AgeAdolescent

	nameAr := m.NameArabic
	if nameAr == "" {
		nameAr = m.Name
	}
	result := &DosageResult{
		Success:        true,
		MedicineID:     medicineID,
		MedicineName:   m.Name,
		MedicineNameAr: nameAr,
		AgeCategory:    category,
		IsPediatric:    pediatric,
	}

	if !pediatric {
		result.RecommendedDose = orDefault(m.AdultDosage, "Consult physician")
		result.RecommendedDoseAr = orDefault(m.AdultDosage, "استشر الطبيب")
		result.CalculationMethod = "standard_adult"
	} else if weightKg != nil && ageYears != nil {
		if rule, ok := ruleFor(m); ok {
			single := *weightKg * rule.childMgPerKg
			maxDaily := *weightKg * rule.childMaxDaily
			result.CalculatedSingleDoseMg = round1(single)
			result.MaxDailyDoseMg = round1(maxDaily)
			result.Frequency = rule.frequency
			result.FrequencyAr = rule.frequencyAr
			result.CalculationMethod = "weight_based"
			result.RecommendedDose = fmt.Sprintf("%.0fmg %s", math.Round(single), rule.frequency)
			result.RecommendedDoseAr = fmt.Sprintf("%.0fمجم %s", math.Round(single), rule.frequencyAr)
			result.Warning = rule.warning
			result.WarningAr = rule.warningAr
		} else {
			result.RecommendedDose = orDefault(m.ChildDosage, "Consult physician for pediatric dosing")
			result.RecommendedDoseAr = orDefault(m.ChildDosage, "استشر الطبيب لجرعة الأطفال")
			result.CalculationMethod = "standard_pediatric"
		}
	} else {
		result.RecommendedDose = orDefault(m.ChildDosage, "Consult physician")
		result.RecommendedDoseAr = orDefault(m.ChildDosage, "استشر الطبيب")
		result.CalculationMethod = "standard_pediatric"
	}

	warnings := append([]string{}, m.Warnings...)
	warningsAr := []string{}
	hasCondition := func(c string) bool {
		for _, cond := range conditions {
			if cond == c {
				return true
			}
		}
		return false
	}
	// Condition warnings only apply when a condition list was supplied, even
	// the age-derived elderly one.
	if len(conditions) > 0 {
		if hasCondition("renal_impairment") {
			warnings = append(warnings, "Adjust dose for kidney function - consult physician")
			warningsAr = append(warningsAr, "يجب تعديل الجرعة حسب وظائف الكلى - استشر الطبيب")
		}
		if hasCondition("hepatic_impairment") {
			warnings = append(warnings, "Adjust dose for liver function - consult physician")
			warningsAr = append(warningsAr, "يجب تعديل الجرعة حسب وظائف الكبد - استشر الطبيب")
		}
		if hasCondition("pregnancy") {
			warnings = append(warnings, "Consult physician before use during pregnancy")
			warningsAr = append(warningsAr, "استشر الطبيب قبل الاستخدام أثناء الحمل")
		}
		if hasCondition("elderly") || category == AgeElderly {
			warnings = append(warnings, "Consider lower initial dose for elderly patients")
			warningsAr = append(warningsAr, "يُنصح ببدء جرعة أقل لكبار السن")
		}
	}

	result.Warnings = warnings
	result.WarningsAr = warningsAr
	result.Contraindications = m.Contraindications
	return result, nil
}

func ruleFor(m *catalog.Medicine) (dosingRule, bool) {
	rules, ok := dosingRules[m.Category]
	if !ok {
		return dosingRule{}, false
	}
	generic := strings.ToLower(m.GenericName)
	for drug, rule := range rules {
		if strings.Contains(generic, drug) {
			return rule, true
		}
	}
	return dosingRule{}, false
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
