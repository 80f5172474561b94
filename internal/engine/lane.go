package engine

import "strings"

// LaneCount is the number of fixed horizontal bands particles travel in.
const LaneCount = 8

// LaneForPath maps a request path to a lane deterministically. The query
// string is ignored so /api/users and /api/users?page=2 share a lane. The
// hash is FNV-1a over the remaining characters; any stable hash would do,
// what matters is that the same path always lands in the same band.
func LaneForPath(path string) int {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	hash := uint32(offset32)
	for i := 0; i < len(path); i++ {
		hash ^= uint32(path[i])
		hash *= prime32
	}
	return int(hash % LaneCount)
}
