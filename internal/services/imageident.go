package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/clients/vision"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// ClassifierHint is an externally supplied classification score, typically
// from an on-device model, fused with OCR matches server-side.
type ClassifierHint struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// IdentifiedMatch is one fused candidate.
type IdentifiedMatch struct {
	Medicine    *catalog.Medicine `json:"medicine"`
	Confidence  float64           `json:"confidence"`
	Sources     []string          `json:"identification_sources"`
	MatchedText string            `json:"matched_text,omitempty"`
}

// IdentifyResult is the image identification response.
type IdentifyResult struct {
	RequestID     string            `json:"request_id"`
	Success       bool              `json:"success"`
	TopMatch      *IdentifiedMatch  `json:"top_match,omitempty"`
	Alternatives  []IdentifiedMatch `json:"alternatives,omitempty"`
	ExtractedText []string          `json:"extracted_text"`
	Message       string            `json:"message,omitempty"`
	Suggestions   []string          `json:"suggestions,omitempty"`
	OCRAvailable  bool              `json:"ocr_available"`
}

// ExtractedInfo categorizes package text without identifying the medicine.
type ExtractedInfo struct {
	Success       bool                `json:"success"`
	ExtractedText map[string][]string `json:"extracted_text"`
	RawText       []string            `json:"raw_text"`
	TextCount     int                 `json:"text_count"`
}

// ImageService identifies medicines from package photos by fusing OCR text
// matches, classifier hints, and barcode lookups.
type ImageService struct {
	log     *logger.Logger
	catalog *catalog.Store
	ocr     vision.TextExtractor
}

func NewImageService(cat *catalog.Store, ocr vision.TextExtractor, log *logger.Logger) *ImageService {
	return &ImageService{
		log:     log.With("service", "ImageService"),
		catalog: cat,
		ocr:     ocr,
	}
}

// SupportedFormats lists accepted upload formats.
func (s *ImageService) SupportedFormats() []string {
	return []string{"jpeg", "jpg", "png", "gif", "bmp", "webp"}
}

// MaxImageSize is the upload cap in bytes.
func (s *ImageService) MaxImageSize() int { return 10 * 1024 * 1024 }

type textMatch struct {
	medicine   *catalog.Medicine
	confidence float64
	text       string
}

// matchText scores every medicine against one piece of OCR text. A full name
// hit dominates, then the package's prominent word, then the generic name,
// then plain word overlap.
func (s *ImageService) matchText(text string, ocrConfidence float64) []textMatch {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	matches := []textMatch{}
	for _, m := range s.catalog.List() {
		name := strings.ToLower(m.Name)
		prominent := ""
		if m.Visual != nil {
			prominent = strings.ToLower(m.Visual.ProminentWord)
		}
		generic := strings.ToLower(m.GenericName)

		score := 0.0
		matched := ""
		switch {
		case strings.Contains(text, name) || strings.Contains(name, text):
			score, matched = 0.95, name
		case prominent != "" && (strings.Contains(text, prominent) || strings.Contains(prominent, text)):
			score, matched = 0.90, prominent
		case generic != "" && (strings.Contains(text, generic) || strings.Contains(generic, text)):
			score, matched = 0.85, generic
		default:
			nameWords := strings.Fields(name)
			textWords := map[string]bool{}
			for _, w := range strings.Fields(text) {
				textWords[w] = true
			}
			overlap := []string{}
			for _, w := range nameWords {
				if textWords[w] {
					overlap = append(overlap, w)
				}
			}
			if len(overlap) > 0 {
				score = 0.5 * float64(len(overlap)) / float64(len(nameWords))
				matched = strings.Join(overlap, " ")
			}
		}
		if score > 0 {
			matches = append(matches, textMatch{medicine: m, confidence: score * ocrConfidence, text: matched})
		}
	}
	return matches
}

func dedupeMatches(matches []textMatch) []textMatch {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].confidence > matches[j].confidence })
	seen := map[string]bool{}
	out := []textMatch{}
	for _, m := range matches {
		if seen[m.medicine.ID] {
			continue
		}
		seen[m.medicine.ID] = true
		out = append(out, m)
		if len(out) == 5 {
			break
		}
	}
	return out
}

// fuse combines classifier and OCR evidence per medicine. Agreement between
// sources earns a bonus; single-source scores are discounted.
func (s *ImageService) fuse(hints []ClassifierHint, ocrMatches []textMatch) []IdentifiedMatch {
	type fusedEntry struct {
		medicine    *catalog.Medicine
		cnnConf     float64
		ocrConf     float64
		matchedText string
		sources     []string
	}
	fused := map[string]*fusedEntry{}
	order := []string{}

	for _, h := range hints {
		m, ok := s.catalog.ByName(h.Name)
		if !ok {
			continue
		}
		if _, dup := fused[m.ID]; dup {
			continue
		}
		fused[m.ID] = &fusedEntry{medicine: m, cnnConf: h.Confidence, sources: []string{"cnn"}}
		order = append(order, m.ID)
	}
	for _, tm := range ocrMatches {
		if entry, ok := fused[tm.medicine.ID]; ok {
			entry.ocrConf = tm.confidence
			entry.matchedText = tm.text
			entry.sources = append(entry.sources, "ocr")
			continue
		}
		fused[tm.medicine.ID] = &fusedEntry{medicine: tm.medicine, ocrConf: tm.confidence, matchedText: tm.text, sources: []string{"ocr"}}
		order = append(order, tm.medicine.ID)
	}

	results := []IdentifiedMatch{}
	for _, id := range order {
		entry := fused[id]
		var conf float64
		switch {
		case entry.cnnConf > 0 && entry.ocrConf > 0:
			conf = 0.6*math.Max(entry.cnnConf, entry.ocrConf) + 0.4*math.Min(entry.cnnConf, entry.ocrConf) + 0.1
		case entry.cnnConf > 0:
			conf = entry.cnnConf * 0.8
		default:
			conf = entry.ocrConf * 0.9
		}
		if conf > 0.98 {
			conf = 0.98
		}
		results = append(results, IdentifiedMatch{
			Medicine:    entry.medicine,
			Confidence:  math.Round(conf*100) / 100,
			Sources:     entry.sources,
			MatchedText: entry.matchedText,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	if len(results) > 5 {
		results = results[:5]
	}
	return results
}

// Identify runs OCR and barcode lookup concurrently, matches the text
// against the catalog, and fuses everything into ranked candidates. A
// barcode hit outranks all fused results.
func (s *ImageService) Identify(ctx context.Context, image []byte, barcode string, hints []ClassifierHint) *IdentifyResult {
	requestID := uuid.NewString()

	var (
		ocrResult    *vision.OCRResult
		barcodeMatch *catalog.Medicine
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.ocr.ExtractText(gctx, image)
		if err != nil {
			s.log.Warn("OCR failed, continuing without text", "request_id", requestID, "error", err)
			res = &vision.OCRResult{}
		}
		ocrResult = res
		return nil
	})
	g.Go(func() error {
		if barcode != "" {
			if m, ok := s.catalog.ByBarcode(barcode); ok {
				barcodeMatch = m
			}
		}
		return nil
	})
	_ = g.Wait()

	extracted := []string{}
	ocrMatches := []textMatch{}
	if ocrResult.Text != "" {
		extracted = append(extracted, ocrResult.Text)
		conf := ocrResult.Confidence
		if conf == 0 {
			conf = 0.8
		}
		ocrMatches = dedupeMatches(s.matchText(ocrResult.Text, conf))
	}

	results := s.fuse(hints, ocrMatches)
	if barcodeMatch != nil {
		results = append([]IdentifiedMatch{{
			Medicine:    barcodeMatch,
			Confidence:  0.99,
			Sources:     []string{"barcode"},
			MatchedText: barcode,
		}}, results...)
	}

	if len(results) == 0 {
		return &IdentifyResult{
			RequestID:     requestID,
			Success:       false,
			ExtractedText: extracted,
			Message:       "Could not identify medicine from image. Please try a clearer photo.",
			Suggestions: []string{
				"Ensure good lighting",
				"Include the medicine name in the photo",
				"Try a photo of the box front",
			},
			OCRAvailable: s.ocr.Enabled(),
		}
	}

	return &IdentifyResult{
		RequestID:     requestID,
		Success:       true,
		TopMatch:      &results[0],
		Alternatives:  results[1:],
		ExtractedText: extracted,
		OCRAvailable:  s.ocr.Enabled(),
	}
}

// ExtractInfo reads package text and buckets it by what it looks like,
// without trying to identify the medicine.
func (s *ImageService) ExtractInfo(ctx context.Context, image []byte) (*ExtractedInfo, error) {
	ocrResult, err := s.ocr.ExtractText(ctx, image)
	if err != nil {
		return nil, err
	}

	categorized := map[string][]string{
		"medicine_name": {},
		"dosage":        {},
		"warnings":      {},
		"ingredients":   {},
		"other":         {},
	}
	raw := []string{}
	if ocrResult.Text != "" {
		for _, line := range strings.Split(ocrResult.Text, ". ") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			raw = append(raw, line)
			lower := strings.ToLower(line)
			switch {
			case containsAny(lower, "mg", "ml", "dose", "dosage"):
				categorized["dosage"] = append(categorized["dosage"], line)
			case containsAny(lower, "warning", "caution", "تحذير"):
				categorized["warnings"] = append(categorized["warnings"], line)
			case containsAny(lower, "active", "ingredient", "contains"):
				categorized["ingredients"] = append(categorized["ingredients"], line)
			default:
				if _, ok := s.catalog.ByName(lower); ok {
					categorized["medicine_name"] = append(categorized["medicine_name"], line)
				} else {
					categorized["other"] = append(categorized["other"], line)
				}
			}
		}
	}

	return &ExtractedInfo{
		Success:       true,
		ExtractedText: categorized,
		RawText:       raw,
		TextCount:     len(raw),
	}, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
