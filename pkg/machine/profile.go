package machine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DispenseProfile models how long dispense pressure stays on per pad:
// a fixed offset plus a per-area term.
type DispenseProfile struct {
	// InitMS is the initial pressure time in milliseconds.
	InitMS float64 `yaml:"init_ms" validate:"gte=0"`

	// AreaMS is the additional milliseconds per mm² of pad area.
	AreaMS float64 `yaml:"area_ms_per_mm2" validate:"gte=0"`
}

// Profile carries the machine parameters of the G-code backend. Values
// come from DefaultProfile, optionally overridden by a YAML profile file.
type Profile struct {
	// FeedRate is the head feed rate in mm/min.
	FeedRate float64 `yaml:"feed_rate_mm_min" validate:"gt=0"`

	// TravelZ is the clearance height for moves between operations. It
	// must clear every feeder and the tallest placed component.
	TravelZ float64 `yaml:"travel_z" validate:"gt=0"`

	// PlaceZOffset is how far above the board surface a component is
	// released.
	PlaceZOffset float64 `yaml:"place_z_offset" validate:"gte=0"`

	// DispenseHeight is the needle height above the board surface while
	// dispensing.
	DispenseHeight float64 `yaml:"dispense_height" validate:"gte=0"`

	// Dispense is the pressure timing model.
	Dispense DispenseProfile `yaml:"dispense"`
}

// DefaultProfile returns the parameters the tool was tuned with.
func DefaultProfile() *Profile {
	return &Profile{
		FeedRate:       1000,
		TravelZ:        10,
		PlaceZOffset:   0.5,
		DispenseHeight: 0.3,
		Dispense: DispenseProfile{
			InitMS: 50,
			AreaMS: 25,
		},
	}
}

// maxProfileSize bounds profile files; anything larger is not a profile.
const maxProfileSize = 1 * 1024 * 1024

// LoadProfile loads a machine profile from a YAML file. Fields omitted
// from the file keep their defaults, so partial profiles are safe.
func LoadProfile(path string) (*Profile, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("profile must have .yaml or .yml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat profile: %w", err)
	}
	if info.Size() > maxProfileSize {
		return nil, fmt.Errorf("profile too large: %d bytes (max %d)", info.Size(), maxProfileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	if err := validator.New().Struct(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return profile, nil
}
