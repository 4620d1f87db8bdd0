package audit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/scrubsnap/internal/config"
	"github.com/nao1215/scrubsnap/internal/model"
)

// DefaultMaxImageSize is the largest asset the EXIF audit reads.
const DefaultMaxImageSize = config.DefaultMaxImageSize

// ExifAuditor reports identifying EXIF metadata in snapshot assets.
// Browsers save page images unmodified, so a photo uploaded by a member
// can still carry GPS coordinates or the owner's name.
type ExifAuditor struct {
	maxImageSize int64
	imagePattern *regexp.Regexp
}

// ExifOption configures an ExifAuditor.
type ExifOption func(*ExifAuditor)

// WithMaxImageSize sets the largest file the auditor reads.
func WithMaxImageSize(size int64) ExifOption {
	return func(a *ExifAuditor) {
		a.maxImageSize = size
	}
}

// NewExifAuditor creates an ExifAuditor.
func NewExifAuditor(opts ...ExifOption) *ExifAuditor {
	a := &ExifAuditor{
		maxImageSize: DefaultMaxImageSize,
		imagePattern: regexp.MustCompile(`(?i)\.(jpe?g|tiff?|heic)$`),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuditDir walks dir and audits every image file in it. A missing dir
// yields no findings.
func (a *ExifAuditor) AuditDir(ctx context.Context, dir string) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return findings, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() || !a.imagePattern.MatchString(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > a.maxImageSize {
			return nil //nolint:nilerr // unreadable or oversized assets are skipped
		}

		data, err := os.ReadFile(path) //nolint:gosec // Path comes from walking the asset directory
		if err != nil {
			return nil //nolint:nilerr // unreadable assets are skipped
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		findings = append(findings, a.AuditImage(data, rel)...)
		return nil
	})
	if err != nil {
		return findings, fmt.Errorf("audit assets in %s: %w", dir, err)
	}

	return findings, nil
}

// AuditImage extracts EXIF data from image bytes and classifies each tag.
// Images without EXIF yield no findings.
func (a *ExifAuditor) AuditImage(data []byte, location string) []model.Finding {
	findings := make([]model.Finding, 0)

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return findings
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return findings
	}

	for _, entry := range entries {
		if f, ok := classifyTag(entry.TagName, entry.Formatted, location); ok {
			findings = append(findings, f)
		}
	}

	return findings
}

// classifyTag turns an identifying EXIF tag into a finding.
func classifyTag(tagName, value, location string) (model.Finding, bool) {
	var findingType, title string

	switch tagName {
	case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
		findingType, title = model.FindingExifGPS, "GPS coordinates in asset EXIF"
	case "Artist", "Author", "Copyright", "XPAuthor":
		findingType, title = model.FindingExifAuthor, "Author or copyright in asset EXIF"
	case "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber":
		findingType, title = model.FindingExifSerial, "Device serial number in asset EXIF"
	case "Make", "Model", "HostComputer":
		findingType, title = model.FindingExifCamera, "Device information in asset EXIF"
	case "Software", "ProcessingSoftware":
		findingType, title = model.FindingExifSoftware, "Software information in asset EXIF"
	case "DateTimeOriginal", "DateTimeDigitized", "DateTime":
		findingType, title = model.FindingExifDateTime, "Timestamp in asset EXIF"
	default:
		return model.Finding{}, false
	}

	return model.NewFinding(findingType, title, tagName+": "+value, location), true
}
