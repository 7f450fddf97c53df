package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	visionapi "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// OCRResult is the text read off a medicine package.
type OCRResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TextExtractor reads printed text from an image. The production backend is
// GCP Vision; a disabled extractor stands in when no credentials are
// configured, so image endpoints keep working on name matching alone.
type TextExtractor interface {
	ExtractText(ctx context.Context, img []byte) (*OCRResult, error)
	Enabled() bool
	Close() error
}

type gcpExtractor struct {
	log    *logger.Logger
	client *visionapi.ImageAnnotatorClient
}

// NewTextExtractor builds the GCP-backed extractor, or the disabled one when
// OCR_ENABLED is off or the client cannot be constructed.
func NewTextExtractor(log *logger.Logger) TextExtractor {
	slog := log.With("service", "VisionOCR")
	if !envutil.Bool("OCR_ENABLED", true) {
		slog.Info("OCR disabled by configuration")
		return &disabledExtractor{}
	}
	client, err := visionapi.NewImageAnnotatorClient(context.Background())
	if err != nil {
		slog.Warn("Vision client unavailable, OCR disabled", "error", err)
		return &disabledExtractor{}
	}
	slog.Info("Vision OCR client ready")
	return &gcpExtractor{log: slog, client: client}
}

func (e *gcpExtractor) ExtractText(ctx context.Context, img []byte) (*OCRResult, error) {
	if len(img) == 0 {
		return &OCRResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: img},
			Features: []*visionpb.Feature{
				{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
			},
		}},
	}
	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return &OCRResult{}, nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}

	fta := r0.FullTextAnnotation
	if fta == nil || strings.TrimSpace(fta.Text) == "" {
		return &OCRResult{}, nil
	}

	conf := 0.0
	blocks := 0
	for _, pg := range fta.Pages {
		if pg == nil {
			continue
		}
		for _, b := range pg.Blocks {
			if b == nil {
				continue
			}
			conf += float64(b.Confidence)
			blocks++
		}
	}
	if blocks > 0 {
		conf /= float64(blocks)
	}

	return &OCRResult{
		Text:       collapseWhitespace(fta.Text),
		Confidence: conf,
	}, nil
}

func (e *gcpExtractor) Enabled() bool { return true }

func (e *gcpExtractor) Close() error { return e.client.Close() }

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type disabledExtractor struct{}

func (disabledExtractor) ExtractText(context.Context, []byte) (*OCRResult, error) {
	return &OCRResult{}, nil
}

func (disabledExtractor) Enabled() bool { return false }

func (disabledExtractor) Close() error { return nil }
