package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LithiraHettiarachchi/gridSense/core/features"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenarios found")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestModelVector(t *testing.T) {
	coef, err := ModelDef{Coef: map[string]float64{"station_encoded": 2, "user_lat": 1}}.Vector()
	if err != nil {
		t.Fatal(err)
	}
	if len(coef) != features.Size || coef[0] != 1 || coef[features.Size-1] != 2 {
		t.Fatalf("unexpected coefficients %v", coef)
	}
	if _, err := (ModelDef{Coef: map[string]float64{"bogus": 1}}).Vector(); err == nil {
		t.Fatal("expected error for unknown feature")
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	tmp, err := os.CreateTemp(t.TempDir(), "bad*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.WriteString(":"); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmp.Name()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
