package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

func sampleMedicines() []*Medicine {
	return []*Medicine{
		{ID: "med-1", Name: "Panadol Extra", Category: "pain_relief", Barcode: "6221155000001"},
		{ID: "med-2", Name: "Brufen", Category: "pain_relief"},
		{ID: "med-3", Name: "Amoxil", Category: "antibiotic"},
		{ID: "med-4", Name: "Ventolin", Category: "respiratory"},
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medicines.json")
	payload := `{"medicines": [
		{"id": "med-1", "name": "Panadol", "category": "pain_relief"},
		{"id": "med-2", "name": "Brufen", "category": "pain_relief"}
	]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, logger.NewNop())
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if m, ok := s.ByID("med-1"); !ok || m.Name != "Panadol" {
		t.Fatalf("ByID = %+v, %v", m, ok)
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	log := logger.NewNop()

	if s := Load("/no/such/file.json", log); s.Len() != 0 {
		t.Errorf("missing file: len = %d", s.Len())
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if s := Load(bad, log); s.Len() != 0 {
		t.Errorf("malformed file: len = %d", s.Len())
	}
}

func TestByNameIsCaseInsensitive(t *testing.T) {
	s := NewFromRecords(sampleMedicines(), logger.NewNop())
	if m, ok := s.ByName("PANADOL EXTRA"); !ok || m.ID != "med-1" {
		t.Fatalf("ByName = %+v, %v", m, ok)
	}
	if _, ok := s.ByName("nope"); ok {
		t.Fatal("unexpected hit for unknown name")
	}
}

func TestByNameFuzzy(t *testing.T) {
	s := NewFromRecords(sampleMedicines(), logger.NewNop())

	// Partial query contained in a catalog name.
	if m, ok := s.ByNameFuzzy("brufe"); !ok || m.ID != "med-2" {
		t.Fatalf("partial query = %+v, %v", m, ok)
	}
	// Catalog name contained in a longer query, as OCR output tends to be.
	if m, ok := s.ByNameFuzzy("amoxil 500mg capsules"); !ok || m.ID != "med-3" {
		t.Fatalf("long query = %+v, %v", m, ok)
	}
	if _, ok := s.ByNameFuzzy("zzz"); ok {
		t.Fatal("unexpected fuzzy hit")
	}
}

func TestByBarcode(t *testing.T) {
	s := NewFromRecords(sampleMedicines(), logger.NewNop())
	if m, ok := s.ByBarcode("6221155000001"); !ok || m.ID != "med-1" {
		t.Fatalf("ByBarcode = %+v, %v", m, ok)
	}
	if _, ok := s.ByBarcode(""); ok {
		t.Fatal("empty barcode matched")
	}
	if _, ok := s.ByBarcode("0000"); ok {
		t.Fatal("unknown barcode matched")
	}
}

func TestCategoriesSortedDistinct(t *testing.T) {
	s := NewFromRecords(sampleMedicines(), logger.NewNop())
	got := s.Categories()
	want := []string{"antibiotic", "pain_relief", "respiratory"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories = %v, want %v", got, want)
		}
	}
}
