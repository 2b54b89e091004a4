package machine

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}
	return path
}

func TestLoadProfile_PartialOverridesDefaults(t *testing.T) {
	path := writeProfile(t, "machine.yaml", `
travel_z: 25
dispense:
  init_ms: 80
`)
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if p.TravelZ != 25 {
		t.Errorf("TravelZ = %g, want 25", p.TravelZ)
	}
	if p.Dispense.InitMS != 80 {
		t.Errorf("InitMS = %g, want 80", p.Dispense.InitMS)
	}
	// Untouched fields keep their defaults.
	if p.FeedRate != 1000 {
		t.Errorf("FeedRate = %g, want default 1000", p.FeedRate)
	}
	if p.Dispense.AreaMS != 25 {
		t.Errorf("AreaMS = %g, want default 25", p.Dispense.AreaMS)
	}
}

func TestLoadProfile_RejectsInvalidValues(t *testing.T) {
	path := writeProfile(t, "machine.yml", "travel_z: -3\n")
	if _, err := LoadProfile(path); err == nil {
		t.Error("Negative travel height should fail validation")
	}
}

func TestLoadProfile_RejectsWrongExtension(t *testing.T) {
	path := writeProfile(t, "machine.json", "{}")
	if _, err := LoadProfile(path); err == nil {
		t.Error("Non-YAML extension should be rejected")
	}
}

func TestLoadProfile_RejectsBadYAML(t *testing.T) {
	path := writeProfile(t, "machine.yaml", "travel_z: [\n")
	if _, err := LoadProfile(path); err == nil {
		t.Error("Malformed YAML should be rejected")
	}
}
