package cache

// Filesystem boundary

// Entry locates a cache entry on disk. FilePath is the entry file itself,
// ShardDir its parent shard directory.
type Entry struct {
	FilePath string
	ShardDir string
}

// LockPath is the sidecar file the store locks while reading or writing
// the entry. It sits next to the entry so locks never cross shards.
func (e Entry) LockPath() string {
	return e.FilePath + ".lock"
}
