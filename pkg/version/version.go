package version

import (
	"encoding/json"
	"fmt"

	"github.com/blang/semver/v4"
)

// FasbVersion indicates what version of fasb the binary belongs to
var FasbVersion string

// GitCommit indicates which git commit the binary was built from
var GitCommit string

// String returns a pretty string concatenation of FasbVersion and GitCommit
func String() string {
	return fmt.Sprintf("fasb version:   %s\n  Git commit: %s\n", FasbVersion, GitCommit)
}

// Version wraps a semantic version so that it serializes as a string.
type Version struct {
	semver.Version
}

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := semver.ParseTolerant(s)
	if err != nil {
		return err
	}
	v.Version = parsed
	return nil
}

// Info describes the running binary.
type Info struct {
	Version   Version `json:"version"`
	GitCommit string  `json:"gitCommit"`
}

// Get parses FasbVersion. Builds without a version stamp report 0.0.0.
func Get() (Info, error) {
	info := Info{GitCommit: GitCommit}
	if FasbVersion == "" {
		return info, nil
	}
	v, err := semver.ParseTolerant(FasbVersion)
	if err != nil {
		return info, fmt.Errorf("invalid version %q: %w", FasbVersion, err)
	}
	info.Version = Version{v}
	return info, nil
}
