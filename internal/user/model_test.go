package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	u := &User{ID: 1, FirstName: "Alice", LastName: "Johnson"}
	assert.Equal(t, "Alice Johnson", u.DisplayName())
}
