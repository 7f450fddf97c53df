package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/clients/rediscache"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// MedicineView is the localized listing shape of a medicine.
type MedicineView struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	NameArabic           string `json:"name_arabic,omitempty"`
	DisplayName          string `json:"display_name"`
	GenericName          string `json:"generic_name"`
	Manufacturer         string `json:"manufacturer,omitempty"`
	DosageForm           string `json:"dosage_form"`
	Category             string `json:"category"`
	Strength             string `json:"strength,omitempty"`
	MainUse              string `json:"main_use,omitempty"`
	RequiresPrescription bool   `json:"requires_prescription"`
	ProductImage         string `json:"product_image,omitempty"`
}

// MedicinePage is one page of the catalog listing.
type MedicinePage struct {
	Success    bool           `json:"success"`
	Medicines  []MedicineView `json:"medicines"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_prev"`
}

// SearchResult is a ranked search response.
type SearchResult struct {
	Query   string         `json:"query"`
	Results []MedicineView `json:"results"`
	Count   int            `json:"count"`
}

// Category is one filterable catalog category with its translations.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
	NameAr string `json:"name_ar"`
}

// AlternativeView is one substitute suggestion for a medicine.
type AlternativeView struct {
	Medicine MedicineView `json:"medicine"`
	Reason   string       `json:"reason"`
	ReasonAr string       `json:"reason_ar"`
}

// AlternativesResult wraps substitute suggestions for one medicine.
type AlternativesResult struct {
	Success      bool              `json:"success"`
	Medicine     MedicineView      `json:"medicine"`
	Alternatives []AlternativeView `json:"alternatives"`
	Count        int               `json:"count"`
}

var categoryNames = map[string]map[string]string{
	"pain_relief":      {"en": "Pain Relief", "ar": "مسكنات الألم"},
	"antibiotic":       {"en": "Antibiotics", "ar": "المضادات الحيوية"},
	"cardiovascular":   {"en": "Cardiovascular", "ar": "أدوية القلب والأوعية"},
	"gastrointestinal": {"en": "Gastrointestinal", "ar": "أدوية الجهاز الهضمي"},
	"respiratory":      {"en": "Respiratory", "ar": "أدوية الجهاز التنفسي"},
	"psychiatric":      {"en": "Psychiatric", "ar": "الأدوية النفسية"},
}

const searchCacheTTL = 5 * time.Minute

// MedicineService serves catalog browsing and search. Search responses are
// cached because the catalog is immutable for the process lifetime.
type MedicineService struct {
	log     *logger.Logger
	catalog *catalog.Store
	cache   rediscache.Cache
}

func NewMedicineService(cat *catalog.Store, cache rediscache.Cache, log *logger.Logger) *MedicineService {
	return &MedicineService{
		log:     log.With("service", "MedicineService"),
		catalog: cat,
		cache:   cache,
	}
}

func view(m *catalog.Medicine, lang string) MedicineView {
	return MedicineView{
		ID:                   m.ID,
		Name:                 m.Name,
		NameArabic:           m.NameArabic,
		DisplayName:          m.DisplayName(lang),
		GenericName:          m.GenericName,
		Manufacturer:         m.Manufacturer,
		DosageForm:           m.DosageForm,
		Category:             m.Category,
		Strength:             m.Strength,
		MainUse:              m.MainUse,
		RequiresPrescription: m.RequiresPrescription,
		ProductImage:         m.ProductImage,
	}
}

// List pages through the catalog with optional category and prescription
// filters.
func (s *MedicineService) List(page, pageSize int, category string, prescriptionOnly *bool, lang string) *MedicinePage {
	filtered := []*catalog.Medicine{}
	for _, m := range s.catalog.List() {
		if category != "" && m.Category != category {
			continue
		}
		if prescriptionOnly != nil && m.RequiresPrescription != *prescriptionOnly {
			continue
		}
		filtered = append(filtered, m)
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	views := make([]MedicineView, 0, end-start)
	for _, m := range filtered[start:end] {
		views = append(views, view(m, lang))
	}

	return &MedicinePage{
		Success:    true,
		Medicines:  views,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// matchScore ranks a medicine against a search query. Name hits dominate,
// then Arabic and generic names, then category and class.
func matchScore(query string, m *catalog.Medicine) float64 {
	score := 0.0
	name := strings.ToLower(m.Name)
	if query == name {
		score += 100
	} else if strings.Contains(name, query) {
		score += 50
	}
	if m.NameArabic != "" && strings.Contains(strings.ToLower(m.NameArabic), query) {
		score += 40
	}
	if strings.Contains(strings.ToLower(m.GenericName), query) {
		score += 30
	}
	if strings.Contains(strings.ToLower(m.Category), query) {
		score += 10
	}
	if strings.Contains(strings.ToLower(m.DrugClass), query) {
		score += 10
	}
	return score
}

// Search returns the top matches for a query, ranked by relevance.
func (s *MedicineService) Search(ctx context.Context, query string, limit int, lang string) *SearchResult {
	normalized := strings.ToLower(strings.TrimSpace(query))
	cacheKey := fmt.Sprintf("search:%s:%d:%s", normalized, limit, lang)

	if raw, ok := s.cache.Get(ctx, cacheKey); ok {
		var cached SearchResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached
		}
	}

	type scored struct {
		m     *catalog.Medicine
		score float64
	}
	hits := []scored{}
	for _, m := range s.catalog.List() {
		if score := matchScore(normalized, m); score > 0 {
			hits = append(hits, scored{m: m, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	views := make([]MedicineView, 0, len(hits))
	for _, h := range hits {
		views = append(views, view(h.m, lang))
	}

	result := &SearchResult{Query: query, Results: views, Count: len(views)}
	if raw, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, cacheKey, raw, searchCacheTTL)
	}
	return result
}

// Categories lists the catalog's distinct categories with translations.
func (s *MedicineService) Categories(lang string) []Category {
	out := []Category{}
	for _, id := range s.catalog.Categories() {
		names, ok := categoryNames[id]
		if !ok {
			names = map[string]string{"en": id, "ar": id}
		}
		name := names[lang]
		if name == "" {
			name = id
		}
		out = append(out, Category{
			ID:     id,
			Name:   name,
			NameEn: names["en"],
			NameAr: names["ar"],
		})
	}
	return out
}

// Detail returns a full medicine record, or nil when unknown.
func (s *MedicineService) Detail(id string) *catalog.Medicine {
	m, ok := s.catalog.ByID(id)
	if !ok {
		return nil
	}
	return m
}

// Alternatives suggests same-category medicines, preferring those sharing an
// indication with the target.
func (s *MedicineService) Alternatives(id string, limit int, lang string) *AlternativesResult {
	target, ok := s.catalog.ByID(id)
	if !ok {
		return nil
	}

	targetIndications := map[string]bool{}
	for _, ind := range target.Indications {
		targetIndications[ind] = true
	}

	alternatives := []AlternativeView{}
	for _, m := range s.catalog.List() {
		if m.ID == id || m.Category != target.Category {
			continue
		}
		common := []string{}
		for _, ind := range m.Indications {
			if targetIndications[ind] {
				common = append(common, ind)
			}
		}
		var reason, reasonAr string
		if len(common) > 0 {
			if len(common) > 2 {
				common = common[:2]
			}
			reason = fmt.Sprintf("Similar use: %s", strings.Join(common, ", "))
			reasonAr = fmt.Sprintf("استخدام مشابه: %s", strings.Join(common, ", "))
		} else {
			reason = fmt.Sprintf("Same category: %s", target.Category)
			reasonAr = fmt.Sprintf("نفس الفئة: %s", target.Category)
		}
		alternatives = append(alternatives, AlternativeView{
			Medicine: view(m, lang),
			Reason:   reason,
			ReasonAr: reasonAr,
		})
		if len(alternatives) >= limit {
			break
		}
	}

	return &AlternativesResult{
		Success:      true,
		Medicine:     view(target, lang),
		Alternatives: alternatives,
		Count:        len(alternatives),
	}
}
