package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgaillard/projecthub/internal/user"
)

func testUsers() []*user.User {
	return []*user.User{
		{ID: 1, FirstName: "Alice", LastName: "Johnson"},
		{ID: 2, FirstName: "Bob", LastName: "Martin"},
		{ID: 3, FirstName: "Carol", LastName: "Smith"},
	}
}

func TestAggregateOrdersByUserID(t *testing.T) {
	resolved := []resolvedMember{
		{Ref: userRef(3), Depth: 0},
		{Ref: userRef(1), Depth: 0},
		{Ref: userRef(2), Depth: 0},
	}

	members := aggregateMembers(resolved, testUsers())
	require.Len(t, members, 3)
	assert.Equal(t, int64(1), members[0].ID)
	assert.Equal(t, int64(2), members[1].ID)
	assert.Equal(t, int64(3), members[2].ID)
	assert.Equal(t, "Alice Johnson", members[0].Name)
}

func TestAggregateIgnoresGroupEntries(t *testing.T) {
	resolved := []resolvedMember{
		{Ref: groupRef(1), Depth: 0},
		{Ref: userRef(2), Depth: 1, Path: []string{"ops"}},
	}

	members := aggregateMembers(resolved, testUsers())
	require.Len(t, members, 1)
	assert.Equal(t, int64(2), members[0].ID)
	assert.Equal(t, []string{"ops"}, members[0].Groups)
}

func TestAggregateDirectMemberHasEmptyGroups(t *testing.T) {
	resolved := []resolvedMember{{Ref: userRef(1), Depth: 0}}

	members := aggregateMembers(resolved, testUsers())
	require.Len(t, members, 1)
	assert.NotNil(t, members[0].Groups)
	assert.Empty(t, members[0].Groups)
}

func TestAggregatePrefersGroupPathOverDirect(t *testing.T) {
	// A user who is both a direct member and reachable via a group
	// reports the group chain, matching the legacy reduction.
	resolved := []resolvedMember{
		{Ref: userRef(1), Depth: 0},
		{Ref: userRef(1), Depth: 1, Path: []string{"ops"}},
	}

	members := aggregateMembers(resolved, testUsers())
	require.Len(t, members, 1)
	assert.Equal(t, []string{"ops"}, members[0].Groups)
}

func TestAggregateLexicographicTieBreak(t *testing.T) {
	tests := []struct {
		name  string
		paths [][]string
		want  []string
	}{
		{
			name:  "single name vs chain",
			paths: [][]string{{"beta"}, {"alpha", "core"}},
			want:  []string{"alpha", "core"},
		},
		{
			name:  "shorter chain wins on shared prefix",
			paths: [][]string{{"alpha", "core"}, {"alpha"}},
			want:  []string{"alpha"},
		},
		{
			name:  "order of discovery does not matter",
			paths: [][]string{{"zeta"}, {"eta"}, {"theta"}},
			want:  []string{"eta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resolved []resolvedMember
			for _, p := range tt.paths {
				resolved = append(resolved, resolvedMember{
					Ref:   userRef(1),
					Depth: len(p),
					Path:  p,
				})
			}

			members := aggregateMembers(resolved, testUsers())
			require.Len(t, members, 1)
			assert.Equal(t, tt.want, members[0].Groups)
		})
	}
}

func TestAggregateDropsUnknownUserIDs(t *testing.T) {
	resolved := []resolvedMember{
		{Ref: userRef(1), Depth: 0},
		{Ref: userRef(999), Depth: 0},
	}

	members := aggregateMembers(resolved, testUsers())
	require.Len(t, members, 1)
	assert.Equal(t, int64(1), members[0].ID)
}

func TestBetterPath(t *testing.T) {
	assert.Equal(t, []string{"a"}, betterPath([]string{"a"}, nil))
	assert.Equal(t, []string{"a"}, betterPath(nil, []string{"a"}))
	assert.Equal(t, []string{"a", "b"}, betterPath([]string{"b"}, []string{"a", "b"}))
	assert.Nil(t, betterPath(nil, nil))
}
