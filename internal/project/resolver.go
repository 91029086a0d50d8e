package project

import "context"

// maxDepth is the maximum number of group-containment hops followed beyond
// a project's direct membership edges. A group reached at depth 4 is still
// expanded once; anything that would land deeper than depth 5 is cut off.
const maxDepth = 5

// graphSource provides the read access the resolver needs: a project's
// direct membership edges and, per group, the group's name and direct members.
type graphSource interface {
	DirectMembers(ctx context.Context, projectID int64) ([]MemberRef, error)
	// GroupWithMembers returns nil when no group row exists for the id.
	GroupWithMembers(ctx context.Context, groupID int64) (*GroupNode, error)
}

// resolvedMember is one raw traversal result: a member reference, the number
// of group hops it took to reach it, and the names of the groups traversed
// on the way, outermost first.
type resolvedMember struct {
	Ref   MemberRef
	Depth int
	Path  []string
}

// frontierEntry is a pending node in the breadth-first expansion. Each entry
// carries its own path and its own set of groups already expanded on that
// path, so that two independent routes to the same group stay independent.
type frontierEntry struct {
	ref     MemberRef
	depth   int
	path    []string
	visited map[int64]struct{}
}

// resolveEffectiveMembers walks the membership graph of a project breadth
// first and returns every member reference encountered, users and groups
// alike, with depth and group path. Callers are expected to have checked
// that the project exists; an unknown or empty project yields no entries.
//
// Expansion rules:
//   - direct project edges seed the frontier at depth 0 with an empty path;
//   - a group entry at depth < maxDepth is expanded into its direct members
//     at depth+1, with the expanded group's name appended to the path;
//   - a user entry is terminal;
//   - a group already expanded on the current path is not expanded again,
//     which terminates containment cycles;
//   - a group id with no matching group row ends that branch silently.
func resolveEffectiveMembers(ctx context.Context, src graphSource, projectID int64) ([]resolvedMember, error) {
	direct, err := src.DirectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	frontier := make([]frontierEntry, 0, len(direct))
	for _, ref := range direct {
		frontier = append(frontier, frontierEntry{ref: ref, depth: 0})
	}

	var resolved []resolvedMember

	for len(frontier) > 0 {
		entry := frontier[0]
		frontier = frontier[1:]

		resolved = append(resolved, resolvedMember{
			Ref:   entry.ref,
			Depth: entry.depth,
			Path:  entry.path,
		})

		if entry.ref.Type != MemberTypeGroup || entry.depth >= maxDepth {
			continue
		}
		if _, seen := entry.visited[entry.ref.ID]; seen {
			continue
		}

		node, err := src.GroupWithMembers(ctx, entry.ref.ID)
		if err != nil {
			return nil, err
		}
		if node == nil {
			// Dangling group reference; nothing further down this branch.
			continue
		}

		visited := make(map[int64]struct{}, len(entry.visited)+1)
		for id := range entry.visited {
			visited[id] = struct{}{}
		}
		visited[node.ID] = struct{}{}

		path := make([]string, len(entry.path), len(entry.path)+1)
		copy(path, entry.path)
		path = append(path, node.Name)

		for _, member := range node.Members {
			frontier = append(frontier, frontierEntry{
				ref:     member,
				depth:   entry.depth + 1,
				path:    path,
				visited: visited,
			})
		}
	}

	return resolved, nil
}
