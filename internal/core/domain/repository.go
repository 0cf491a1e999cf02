package domain

import (
	"errors"
	"strings"
	"time"
)

// DefaultMarkerFile is the file whose presence is searched for.
const DefaultMarkerFile = ".cursorrules"

// fallbackBranch is resolved by GitHub to the repository's default branch.
const fallbackBranch = "HEAD"

// RepositoryRecord is one discovered repository.
// Records are immutable once created.
type RepositoryRecord struct {
	// Identity is the owner/name key, unique within a snapshot.
	Identity string

	// URL is the repository's web URL.
	URL string

	// Description is optional.
	Description *string

	// Stars is the stargazer count.
	Stars int

	// Language is the primary language, if detected.
	Language *string

	// UpdatedAt is when the repository was last updated.
	UpdatedAt time.Time

	// MarkerFileURL points at the marker file on the default branch.
	MarkerFileURL string
}

// SearchHit holds the raw fields of a single search result.
type SearchHit struct {
	FullName      string
	HTMLURL       string
	Description   *string
	Stars         int
	Language      *string
	UpdatedAt     time.Time
	DefaultBranch string
}

// Identity returns the normalized identity for the hit.
// GitHub treats owner/name case-insensitively, so the key is lower-cased.
func (h SearchHit) Identity() string {
	return IdentityKey(h.FullName)
}

// IdentityKey normalizes an owner/name pair into a dedup key.
func IdentityKey(fullName string) string {
	return strings.ToLower(strings.TrimSpace(fullName))
}

// NormalizeHit converts a search hit into a RepositoryRecord.
// It returns a *RecordNormalizationError when a required field is unusable.
func NormalizeHit(hit SearchHit, markerFile string) (RepositoryRecord, error) {
	name := strings.TrimSpace(hit.FullName)
	if name == "" || strings.Count(name, "/") != 1 || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return RepositoryRecord{}, &RecordNormalizationError{
			Identity: hit.FullName, Field: "full_name", Err: ErrInvalidInput,
		}
	}

	url := strings.TrimRight(strings.TrimSpace(hit.HTMLURL), "/")
	if url == "" {
		return RepositoryRecord{}, &RecordNormalizationError{
			Identity: name, Field: "html_url", Err: ErrInvalidInput,
		}
	}

	if hit.Stars < 0 {
		return RepositoryRecord{}, &RecordNormalizationError{
			Identity: name, Field: "stargazers_count", Err: errors.New("negative star count"),
		}
	}

	if markerFile == "" {
		markerFile = DefaultMarkerFile
	}

	return RepositoryRecord{
		Identity:      name,
		URL:           url,
		Description:   nonEmpty(hit.Description),
		Stars:         hit.Stars,
		Language:      nonEmpty(hit.Language),
		UpdatedAt:     hit.UpdatedAt.UTC(),
		MarkerFileURL: MarkerFileURL(url, hit.DefaultBranch, markerFile),
	}, nil
}

// MarkerFileURL builds the blob URL of the marker file.
func MarkerFileURL(repoURL, branch, markerFile string) string {
	if branch == "" {
		branch = fallbackBranch
	}
	return strings.TrimRight(repoURL, "/") + "/blob/" + branch + "/" + strings.TrimLeft(markerFile, "/")
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
