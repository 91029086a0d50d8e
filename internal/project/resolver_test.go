package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGraph is an in-memory graphSource for resolver tests.
type fakeGraph struct {
	direct map[int64][]MemberRef
	groups map[int64]*GroupNode
}

func (f *fakeGraph) DirectMembers(_ context.Context, projectID int64) ([]MemberRef, error) {
	return f.direct[projectID], nil
}

func (f *fakeGraph) GroupWithMembers(_ context.Context, groupID int64) (*GroupNode, error) {
	return f.groups[groupID], nil
}

func userRef(id int64) MemberRef  { return MemberRef{Type: MemberTypeUser, ID: id} }
func groupRef(id int64) MemberRef { return MemberRef{Type: MemberTypeGroup, ID: id} }

// chainGraph builds project 1 -> group A -> B -> C -> D -> E -> F, with
// user 10 attached to E (5 hops) and user 9 attached to F (6 hops).
func chainGraph() *fakeGraph {
	return &fakeGraph{
		direct: map[int64][]MemberRef{1: {groupRef(1)}},
		groups: map[int64]*GroupNode{
			1: {ID: 1, Name: "A", Members: []MemberRef{groupRef(2)}},
			2: {ID: 2, Name: "B", Members: []MemberRef{groupRef(3)}},
			3: {ID: 3, Name: "C", Members: []MemberRef{groupRef(4)}},
			4: {ID: 4, Name: "D", Members: []MemberRef{groupRef(5)}},
			5: {ID: 5, Name: "E", Members: []MemberRef{groupRef(6), userRef(10)}},
			6: {ID: 6, Name: "F", Members: []MemberRef{userRef(9)}},
		},
	}
}

// findUser returns the traversal entries that reached the given user id.
func findUser(resolved []resolvedMember, id int64) []resolvedMember {
	var out []resolvedMember
	for _, entry := range resolved {
		if entry.Ref.Type == MemberTypeUser && entry.Ref.ID == id {
			out = append(out, entry)
		}
	}
	return out
}

func TestResolveEmptyProject(t *testing.T) {
	src := &fakeGraph{direct: map[int64][]MemberRef{}, groups: map[int64]*GroupNode{}}

	resolved, err := resolveEffectiveMembers(context.Background(), src, 1)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveDirectUser(t *testing.T) {
	src := &fakeGraph{
		direct: map[int64][]MemberRef{1: {userRef(42)}},
		groups: map[int64]*GroupNode{},
	}

	resolved, err := resolveEffectiveMembers(context.Background(), src, 1)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, userRef(42), resolved[0].Ref)
	assert.Equal(t, 0, resolved[0].Depth)
	assert.Empty(t, resolved[0].Path)
}

func TestResolveDepthBound(t *testing.T) {
	resolved, err := resolveEffectiveMembers(context.Background(), chainGraph(), 1)
	require.NoError(t, err)

	// User 10 sits 5 hops from the project and must come out with the
	// full chain of traversed groups.
	entries := findUser(resolved, 10)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Depth)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, entries[0].Path)

	// Group F is reached at depth 5 but never expanded, so user 9 at
	// depth 6 stays invisible.
	assert.Empty(t, findUser(resolved, 9))
}

func TestResolveCycleTerminates(t *testing.T) {
	// A contains B, B contains A; user 7 sits in B.
	src := &fakeGraph{
		direct: map[int64][]MemberRef{1: {groupRef(1)}},
		groups: map[int64]*GroupNode{
			1: {ID: 1, Name: "A", Members: []MemberRef{groupRef(2)}},
			2: {ID: 2, Name: "B", Members: []MemberRef{groupRef(1), userRef(7)}},
		},
	}

	resolved, err := resolveEffectiveMembers(context.Background(), src, 1)
	require.NoError(t, err)

	entries := findUser(resolved, 7)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"A", "B"}, entries[0].Path)
}

func TestResolveSelfContainingGroup(t *testing.T) {
	src := &fakeGraph{
		direct: map[int64][]MemberRef{1: {groupRef(1)}},
		groups: map[int64]*GroupNode{
			1: {ID: 1, Name: "A", Members: []MemberRef{groupRef(1), userRef(3)}},
		},
	}

	resolved, err := resolveEffectiveMembers(context.Background(), src, 1)
	require.NoError(t, err)

	entries := findUser(resolved, 3)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"A"}, entries[0].Path)
}

func TestResolveDanglingGroupReference(t *testing.T) {
	src := &fakeGraph{
		direct: map[int64][]MemberRef{1: {groupRef(99), userRef(2)}},
		groups: map[int64]*GroupNode{},
	}

	resolved, err := resolveEffectiveMembers(context.Background(), src, 1)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Len(t, findUser(resolved, 2), 1)
}

func TestResolveIndependentPaths(t *testing.T) {
	// User 5 is reachable through two separate groups; both paths must
	// survive the traversal so the aggregator can choose between them.
	src := &fakeGraph{
		direct: map[int64][]MemberRef{1: {groupRef(1), groupRef(2)}},
		groups: map[int64]*GroupNode{
			1: {ID: 1, Name: "ops", Members: []MemberRef{userRef(5)}},
			2: {ID: 2, Name: "dev", Members: []MemberRef{userRef(5)}},
		},
	}

	resolved, err := resolveEffectiveMembers(context.Background(), src, 1)
	require.NoError(t, err)

	entries := findUser(resolved, 5)
	require.Len(t, entries, 2)

	paths := [][]string{entries[0].Path, entries[1].Path}
	assert.ElementsMatch(t, [][]string{{"ops"}, {"dev"}}, paths)
}

func TestResolveDeterministic(t *testing.T) {
	first, err := resolveEffectiveMembers(context.Background(), chainGraph(), 1)
	require.NoError(t, err)
	second, err := resolveEffectiveMembers(context.Background(), chainGraph(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
