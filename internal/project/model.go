package project

// Project represents a project in the system
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberType discriminates what a membership edge points at
type MemberType string

const (
	MemberTypeUser  MemberType = "user"
	MemberTypeGroup MemberType = "group"
)

// MemberRef is a tagged reference to either a user or a group. The ID is
// interpreted against the users or the groups table depending on Type; the
// schema holds no foreign key across the polymorphic reference, so a dangling
// group reference is possible and must be tolerated by the resolver.
type MemberRef struct {
	Type MemberType
	ID   int64
}

// GroupNode is a group together with its direct membership edges, as read
// by the resolver while walking the group graph.
type GroupNode struct {
	ID      int64
	Name    string
	Members []MemberRef
}

// EffectiveMember is a user reachable from a project, annotated with the
// chain of group names that brought them in. Groups is empty for users
// that are only direct members of the project.
type EffectiveMember struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
}
