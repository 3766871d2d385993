package loader

import (
	"os"
	"path/filepath"
	"testing"

	modelx "github.com/narinth/insurepath/insurance/model"
	registryx "github.com/narinth/insurepath/insurance/registry"
)

const validProductYAML = `id: health-001
name: Essential Health Plan
category: health
provider_id: mock-insurance
active: true
eligibility_rules:
  - name: adult_applicant
    description: Applicant must be an adult
    logic: all
    qualifiers:
      - name: minimum_age
        description: Must be 18 or older
        field: age
        operator: gte
        value: 18
`

const invalidOperatorYAML = `id: broken-001
name: Broken Plan
category: health
provider_id: mock-insurance
eligibility_rules:
  - name: bad_rule
    logic: all
    qualifiers:
      - name: bad_qualifier
        field: age
        operator: between
        value: 18
`

func writeProduct(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeProduct(t, dir, "health.yaml", validProductYAML)

	product, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if product.ID != "health-001" || product.Category != modelx.CategoryHealth {
		t.Fatalf("product = %+v", product)
	}
	if len(product.EligibilityRules) != 1 || len(product.EligibilityRules[0].Qualifiers) != 1 {
		t.Fatalf("rules = %+v", product.EligibilityRules)
	}
	if got := product.EligibilityRules[0].Qualifiers[0].Operator; got != modelx.OpGte {
		t.Fatalf("operator = %q, want gte", got)
	}
}

func TestLoadFileJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeProduct(t, dir, "dental.json", `{
		"id": "dental-001",
		"name": "Preventive Dental Plan",
		"category": "dental",
		"provider_id": "mock-insurance",
		"active": true
	}`)

	product, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if product.ID != "dental-001" || !product.Active {
		t.Fatalf("product = %+v", product)
	}
}

func TestLoadFileRejectsInvalidOperator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeProduct(t, dir, "broken.yaml", invalidOperatorYAML)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("unknown operator must fail validation at load time")
	}
}

func TestLoadDirectorySkipsMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProduct(t, dir, "health.yaml", validProductYAML)
	writeProduct(t, dir, "broken.yaml", invalidOperatorYAML)
	writeProduct(t, dir, "garbage.json", `{"id": "x",`)
	writeProduct(t, dir, "ignored.txt", "not a product")

	registry := registryx.NewProductRegistry()
	loaded, err := LoadDirectory(dir, registry)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if loaded != 1 {
		t.Fatalf("loaded = %d, want 1", loaded)
	}
	if _, ok := registry.Get("health-001"); !ok {
		t.Fatal("valid product must be registered")
	}
	if _, ok := registry.Get("broken-001"); ok {
		t.Fatal("invalid product must not be registered")
	}
}

func TestLoadDirectoryMissingDir(t *testing.T) {
	t.Parallel()

	registry := registryx.NewProductRegistry()
	loaded, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"), registry)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if loaded != 0 {
		t.Fatalf("loaded = %d, want 0", loaded)
	}
}
