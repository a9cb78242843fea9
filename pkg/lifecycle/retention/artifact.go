package retention

import (
	"regexp"
	"strings"
	"time"
)

// Artifact is a rotated log file eligible for retention cleanup. The live
// file a class is currently writing ("<class>_<env>.log") is never an
// Artifact; only files the rotation engine has already renamed or
// compressed qualify, which is what makes cleanup safe to run while the
// service keeps logging.
type Artifact struct {
	// Name is the file name within the log directory.
	Name string `json:"name"`

	// Path is the absolute or directory-relative path to the file.
	Path string `json:"path"`

	// Class is the log class parsed from the name (e.g. "app", "audit").
	Class string `json:"class"`

	// RotatedAt is when the artifact was rotated: the date stamped in the
	// name when present, the file modification time otherwise.
	RotatedAt time.Time `json:"rotated_at"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Compressed reports whether the artifact is gzip-compressed.
	Compressed bool `json:"compressed"`
}

// dateStampLayout matches the suffix the rotation rules stamp on rotated
// files: app_production_2026-08-25.log.gz
const dateStampLayout = "2006-01-02"

// numberedSuffix matches logrotate's numbered naming: app_production.log.1
var numberedSuffix = regexp.MustCompile(`\.log\.\d+$`)

// ParseArtifact classifies a file name from the log directory. It returns
// the parsed artifact and true when the file is a rotated artifact, or a
// zero artifact and false for live log files and unrelated files.
func ParseArtifact(name string, size int64, modTime time.Time) (Artifact, bool) {
	base := name
	compressed := strings.HasSuffix(base, ".gz")
	if compressed {
		base = strings.TrimSuffix(base, ".gz")
	}

	numbered := numberedSuffix.MatchString(base)
	if numbered {
		base = base[:strings.LastIndex(base, ".")]
	}

	if !strings.HasSuffix(base, ".log") {
		return Artifact{}, false
	}
	stem := strings.TrimSuffix(base, ".log")

	parts := strings.Split(stem, "_")
	artifact := Artifact{
		Name:       name,
		Class:      parts[0],
		Size:       size,
		Compressed: compressed,
	}

	// Date-stamped names carry their rotation time; numbered or merely
	// compressed names fall back to the file modification time.
	if last := parts[len(parts)-1]; len(parts) > 1 {
		if stamp, err := time.Parse(dateStampLayout, last); err == nil {
			artifact.RotatedAt = stamp
			return artifact, true
		}
	}

	if numbered || compressed {
		artifact.RotatedAt = modTime
		return artifact, true
	}

	// Plain "<class>_<env>.log" with no rotation marker: the live file.
	return Artifact{}, false
}
