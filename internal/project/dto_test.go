package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMembersRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		userIDs []int64
		wantErr bool
	}{
		{name: "nil", userIDs: nil, wantErr: true},
		{name: "empty", userIDs: []int64{}, wantErr: true},
		{name: "duplicates", userIDs: []int64{1, 2, 1}, wantErr: true},
		{name: "single id", userIDs: []int64{1}, wantErr: false},
		{name: "several ids", userIDs: []int64{1, 2, 3}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AddMembersRequest{UserIDs: tt.userIDs}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
