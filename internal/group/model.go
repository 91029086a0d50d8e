package group

// MemberType discriminates what a membership edge points at
type MemberType string

const (
	MemberTypeUser  MemberType = "user"
	MemberTypeGroup MemberType = "group"
)

// Valid reports whether the member type is one of the known variants
func (t MemberType) Valid() bool {
	return t == MemberTypeUser || t == MemberTypeGroup
}

// Group represents a named collection of users and other groups
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Member represents a direct member of a group. MemberID is interpreted
// against either the users or the groups table depending on MemberType;
// the schema holds no foreign key across that polymorphic reference.
type Member struct {
	GroupID    int64      `json:"group_id"`
	MemberType MemberType `json:"member_type"`
	MemberID   int64      `json:"member_id"`
}
