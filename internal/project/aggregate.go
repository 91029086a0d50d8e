package project

import (
	"sort"
	"strings"

	"github.com/mgaillard/projecthub/internal/user"
)

// pathSeparator joins group names when comparing candidate paths.
const pathSeparator = ">"

// aggregateMembers collapses raw traversal entries into one record per user.
//
// Only user entries are considered. When a user is reachable several ways,
// the lexicographically smallest non-empty joined path wins; the empty path
// is reported only when the user was reached exclusively as a direct project
// member. Results are ordered by ascending user id, and a traversal id with
// no matching user row is dropped.
func aggregateMembers(resolved []resolvedMember, users []*user.User) []*EffectiveMember {
	best := make(map[int64][]string)
	for _, entry := range resolved {
		if entry.Ref.Type != MemberTypeUser {
			continue
		}
		current, seen := best[entry.Ref.ID]
		if !seen {
			best[entry.Ref.ID] = entry.Path
			continue
		}
		best[entry.Ref.ID] = betterPath(current, entry.Path)
	}

	members := make([]*EffectiveMember, 0, len(best))
	for _, u := range users {
		path, ok := best[u.ID]
		if !ok {
			continue
		}
		groups := make([]string, len(path))
		copy(groups, path)
		members = append(members, &EffectiveMember{
			ID:     u.ID,
			Name:   u.DisplayName(),
			Groups: groups,
		})
	}

	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	return members
}

// betterPath picks the path to report for a user reached more than once:
// any non-empty path beats the empty one, and between two non-empty paths
// the lexicographically smaller joined string wins.
func betterPath(a, b []string) []string {
	switch {
	case len(b) == 0:
		return a
	case len(a) == 0:
		return b
	case strings.Join(b, pathSeparator) < strings.Join(a, pathSeparator):
		return b
	default:
		return a
	}
}
