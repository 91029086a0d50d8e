package project

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Service, *fakeStore) {
	t.Helper()
	svc, store := newTestService()
	server := httptest.NewServer(NewHandler(svc).Routes())
	t.Cleanup(server.Close)
	return server, svc, store
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGetMembersEndpoint(t *testing.T) {
	server, svc, store := newTestServer(t)
	p := seedProject(t, svc)

	store.direct[p.ID] = []MemberRef{groupRef(10)}
	store.groups[10] = &GroupNode{ID: 10, Name: "core", Members: []MemberRef{userRef(2)}}

	resp := doJSON(t, http.MethodGet, server.URL+"/1/members", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []EffectiveMember `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, int64(2), body.Data[0].ID)
	assert.Equal(t, "Bob Martin", body.Data[0].Name)
	assert.Equal(t, []string{"core"}, body.Data[0].Groups)
}

func TestGetMembersEndpointNotFound(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/404/members", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddMembersEndpointStatuses(t *testing.T) {
	server, svc, _ := newTestServer(t)
	seedProject(t, svc)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "adds a user", body: `{"user_ids": [1]}`, want: http.StatusCreated},
		{name: "single duplicate conflicts", body: `{"user_ids": [1]}`, want: http.StatusConflict},
		{name: "skips duplicate among several", body: `{"user_ids": [1, 2]}`, want: http.StatusCreated},
		{name: "empty array", body: `{"user_ids": []}`, want: http.StatusBadRequest},
		{name: "duplicate ids", body: `{"user_ids": [3, 3]}`, want: http.StatusBadRequest},
		{name: "non-integer ids", body: `{"user_ids": [1.5]}`, want: http.StatusBadRequest},
		{name: "not an array", body: `{"user_ids": 1}`, want: http.StatusBadRequest},
		{name: "unknown user", body: `{"user_ids": [999]}`, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, server.URL+"/1/members", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRemoveMemberEndpoint(t *testing.T) {
	server, svc, _ := newTestServer(t)
	p := seedProject(t, svc)

	_, err := svc.AddMembers(context.Background(), p.ID, []int64{1})
	require.NoError(t, err)

	resp := doJSON(t, http.MethodDelete, server.URL+"/1/members/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/1/members/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
