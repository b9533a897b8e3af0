package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/rohmanhakim/whois-client/pkg/failure"
	"github.com/rohmanhakim/whois-client/pkg/fileutil"
)

/*
Responsibilities

- Map a domain to its on-disk entry path
- Read, write and delete entries
- Serialize entry I/O against other processes sharing the cache root

Layout

Entries live at <root>/<shard>/<domain>.xml where the shard is the
lowercased first character of the domain. The layout is shared with other
consumers of the cache tree, so it must not change.

Existence of the entry file is the sole cache-hit signal. Entries are
never expired; they are removed only by an explicit Delete.
*/

// modifiedDateLayout is a short date, the shape the reporting layer expects.
const modifiedDateLayout = "01/02/2006"

type Store struct {
	root   string
	logger zerolog.Logger
}

func NewStore(root string, logger zerolog.Logger) *Store {
	return &Store{
		root:   root,
		logger: logger,
	}
}

// Locate computes the entry location for a domain. Pure: it never touches
// the filesystem.
func (s *Store) Locate(domain string) Entry {
	shardDir := filepath.Join(s.root, shard(domain))
	return Entry{
		FilePath: filepath.Join(shardDir, domain+".xml"),
		ShardDir: shardDir,
	}
}

// Exists reports whether a regular file holds an entry for domain.
func (s *Store) Exists(domain string) bool {
	if domain == "" {
		return false
	}
	info, err := os.Stat(s.Locate(domain).FilePath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Read returns the full cached payload for domain. The entry file is read
// under an exclusive lock. A missing entry is an error, not a miss: the
// caller checks Exists first, and losing the race after that check must
// surface.
func (s *Store) Read(domain string) ([]byte, failure.ClassifiedError) {
	if err := validateDomain(domain); err != nil {
		return nil, err
	}

	entry := s.Locate(domain)
	data, err := fileutil.ReadLocked(entry.FilePath, entry.LockPath())
	if err != nil {
		return nil, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
			Domain:    domain,
			Path:      entry.FilePath,
		}
	}
	return data, nil
}

// Write stores payload as the entry for domain, creating the shard
// directory on demand and overwriting any previous content. The write is
// temp-file-plus-rename under an exclusive lock, so concurrent readers
// see either the old payload or the new one, never a partial write.
func (s *Store) Write(domain string, payload []byte) failure.ClassifiedError {
	if err := validateDomain(domain); err != nil {
		return err
	}

	entry := s.Locate(domain)
	if err := fileutil.EnsureDir(entry.ShardDir); err != nil {
		return &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Domain:    domain,
			Path:      entry.ShardDir,
		}
	}

	if err := fileutil.WriteLocked(entry.FilePath, entry.LockPath(), payload); err != nil {
		return &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Domain:    domain,
			Path:      entry.FilePath,
		}
	}

	s.logger.Debug().
		Str("domain", domain).
		Str("path", entry.FilePath).
		Int("bytes", len(payload)).
		Msg("cache entry written")
	return nil
}

// Delete removes the entry for domain. A never-cached domain is a no-op;
// failing to remove an existing entry is an error.
func (s *Store) Delete(domain string) failure.ClassifiedError {
	if err := validateDomain(domain); err != nil {
		return err
	}

	entry := s.Locate(domain)
	if err := os.Remove(entry.FilePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseDeleteFailure,
			Domain:    domain,
			Path:      entry.FilePath,
		}
	}

	// The sidecar lock is scrap once the entry is gone.
	os.Remove(entry.LockPath())

	s.logger.Debug().
		Str("domain", domain).
		Str("path", entry.FilePath).
		Msg("cache entry deleted")
	return nil
}

// ModifiedDate returns the entry's last-modified timestamp as a short
// date string.
func (s *Store) ModifiedDate(domain string) (string, failure.ClassifiedError) {
	if err := validateDomain(domain); err != nil {
		return "", err
	}

	entry := s.Locate(domain)
	info, err := os.Stat(entry.FilePath)
	if err != nil {
		return "", &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseMissingEntry,
			Domain:    domain,
			Path:      entry.FilePath,
		}
	}
	return info.ModTime().Format(modifiedDateLayout), nil
}

func validateDomain(domain string) failure.ClassifiedError {
	if domain == "" {
		return &CacheError{
			Message:   "domain must be non-empty",
			Retryable: false,
			Cause:     ErrCauseEmptyDomain,
		}
	}
	return nil
}

// shard is the lowercased first character of the domain. No other
// normalization: the rest of the domain is used as supplied.
func shard(domain string) string {
	r, _ := utf8.DecodeRuneInString(domain)
	return strings.ToLower(string(r))
}
