package element

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/reef/internal/core"
)

type capturedRequest struct {
	method string
	params map[string]interface{}
	id     string
	user   string
	pass   string
}

// fakeCluster serves the JSON-RPC endpoint and records requests.
type fakeCluster struct {
	server   *httptest.Server
	requests []capturedRequest
	// respond maps method name to a raw JSON response body.
	respond map[string]string
}

func newFakeCluster(t *testing.T) *fakeCluster {
	t.Helper()
	f := &fakeCluster{respond: map[string]string{}}
	f.server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string                 `json:"method"`
			Params map[string]interface{} `json:"params"`
			ID     string                 `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		user, pass, _ := r.BasicAuth()
		f.requests = append(f.requests, capturedRequest{
			method: req.Method, params: req.Params, id: req.ID, user: user, pass: pass,
		})

		body, ok := f.respond[req.Method]
		if !ok {
			body = `{"result": {}}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCluster) client() *Client {
	mvip := strings.TrimPrefix(f.server.URL, "https://")
	return NewClient(mvip, "", "admin", "adminpw", 5*time.Second)
}

func (f *fakeCluster) last(t *testing.T) capturedRequest {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func TestListClusterAdmins(t *testing.T) {
	f := newFakeCluster(t)
	f.respond["ListClusterAdmins"] = `{"result": {"clusterAdmins": [
		{"clusterAdminID": 1, "username": "admin", "access": ["administrator"], "authMethod": "Cluster"},
		{"clusterAdminID": 7, "username": "se1", "access": ["reporting", "volumes"], "authMethod": "Ldap"}
	]}}`

	admins, err := f.client().ListClusterAdmins(context.Background())

	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, int64(7), admins[1].ID)
	assert.Equal(t, []string{"reporting", "volumes"}, admins[1].Access)
	assert.Equal(t, AuthLdap, admins[1].AuthMethod)

	req := f.last(t)
	assert.Equal(t, "ListClusterAdmins", req.method)
	assert.Equal(t, "admin", req.user)
	assert.Equal(t, "adminpw", req.pass)
	assert.NotEmpty(t, req.id, "every call carries a request id")
}

func TestAddClusterAdmin(t *testing.T) {
	f := newFakeCluster(t)
	f.respond["AddClusterAdmin"] = `{"result": {"clusterAdminID": 12}}`

	admin, err := f.client().AddClusterAdmin(context.Background(),
		"ops1", "p1", []string{"nodes", "accounts", "drives"}, true)

	require.NoError(t, err)
	assert.Equal(t, int64(12), admin.ID)
	assert.Equal(t, AuthCluster, admin.AuthMethod)

	req := f.last(t)
	assert.Equal(t, "ops1", req.params["username"])
	assert.Equal(t, "p1", req.params["password"])
	assert.Equal(t, true, req.params["acceptEula"])
}

func TestAddLdapClusterAdmin_NoPasswordParam(t *testing.T) {
	f := newFakeCluster(t)
	f.respond["AddLdapClusterAdmin"] = `{"result": {"clusterAdminID": 13}}`

	admin, err := f.client().AddLdapClusterAdmin(context.Background(),
		"dirops", []string{"reporting"}, true)

	require.NoError(t, err)
	assert.Equal(t, AuthLdap, admin.AuthMethod)

	req := f.last(t)
	_, hasPassword := req.params["password"]
	assert.False(t, hasPassword, "directory accounts carry no password")
}

func TestModifyClusterAdmin_OmitsEmptyPassword(t *testing.T) {
	f := newFakeCluster(t)

	_, err := f.client().ModifyClusterAdmin(context.Background(), 7, "", []string{"read"})
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, "ModifyClusterAdmin", req.method)
	assert.Equal(t, float64(7), req.params["clusterAdminID"])
	_, hasPassword := req.params["password"]
	assert.False(t, hasPassword)

	_, err = f.client().ModifyClusterAdmin(context.Background(), 7, "newpw", []string{"read"})
	require.NoError(t, err)
	assert.Equal(t, "newpw", f.last(t).params["password"])
}

func TestRemoveClusterAdmin(t *testing.T) {
	f := newFakeCluster(t)

	err := f.client().RemoveClusterAdmin(context.Background(), 9)

	require.NoError(t, err)
	req := f.last(t)
	assert.Equal(t, "RemoveClusterAdmin", req.method)
	assert.Equal(t, float64(9), req.params["clusterAdminID"])
}

func TestGetClusterInfo(t *testing.T) {
	f := newFakeCluster(t)
	f.respond["GetClusterInfo"] = `{"result": {"clusterInfo": {
		"name": "lab", "mvip": "10.0.0.5", "ensemble": ["10.0.0.1", "10.0.0.2", "10.0.0.3"]
	}}}`

	info, err := f.client().GetClusterInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "lab", info.Name)
	assert.Len(t, info.Ensemble, 3)
}

func TestFaultMapping(t *testing.T) {
	tests := []struct {
		name  string
		fault string
		check func(error) bool
	}{
		{"duplicate username", "xDuplicateUsername", core.IsDuplicate},
		{"unknown admin", "xUnknownClusterAdmin", core.IsNotFound},
		{"anything else", "xInternalError", core.IsTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeCluster(t)
			f.respond["AddClusterAdmin"] = `{"error": {"code": 500, "name": "` + tt.fault + `", "message": "boom"}}`

			_, err := f.client().AddClusterAdmin(context.Background(), "ops1", "p1", nil, true)

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected kind for %v", err)
			assert.Contains(t, err.Error(), tt.fault)
		})
	}
}

func TestUnauthorizedIsTransport(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(strings.TrimPrefix(server.URL, "https://"), "", "admin", "wrong", 5*time.Second)
	_, err := client.ListClusterAdmins(context.Background())

	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}

func TestConnectionRefusedIsTransport(t *testing.T) {
	client := NewClient("127.0.0.1:1", "", "admin", "pw", time.Second)

	_, err := client.ListClusterAdmins(context.Background())

	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}
