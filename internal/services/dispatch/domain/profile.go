package domain

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	perr "bankingops/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// StepProfile is the registration data for one operation
type StepProfile struct {
	Static string `yaml:"static"`
}

// Profile maps operation names to their registration data
type Profile struct {
	Operations map[string]StepProfile `yaml:"operations"`
}

// Static returns the static configuration registered for op, or ""
func (p Profile) Static(op string) string {
	return strings.TrimSpace(p.Operations[op].Static)
}

// ParseProfile decodes YAML and rejects unknown operation names
func ParseProfile(b []byte) (Profile, error) {
	var p Profile
	if len(strings.TrimSpace(string(b))) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Profile{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid registration profile")
	}
	known := map[string]bool{}
	for _, n := range Names() {
		known[n] = true
	}
	for name := range p.Operations {
		if !known[name] {
			return Profile{}, perr.InvalidArgf("registration profile names unknown operation %q", name)
		}
	}
	return p, nil
}

// LoadProfile reads path; an empty path or a missing file yields an empty profile
func LoadProfile(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Profile{}, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "read registration profile %s", path)
	}
	return ParseProfile(b)
}
