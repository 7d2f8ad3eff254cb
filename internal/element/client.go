// Package element is the transport layer for the cluster's JSON-RPC
// management API. It authenticates every call with the configured admin
// credentials and maps API faults onto the core error taxonomy. No retries
// happen here; a failed call is surfaced verbatim to the reconciler.
package element

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/melih-ucgun/reef/internal/core"
)

// DefaultAPIVersion is used when the cluster entry does not pin one.
const DefaultAPIVersion = "12.3"

// Client talks to a single cluster's management endpoint.
type Client struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a client for https://<mvip>/json-rpc/<version>.
func NewClient(mvip, version, username, password string, timeout time.Duration) *Client {
	if version == "" {
		version = DefaultAPIVersion
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Management endpoints ship with self-signed certificates.
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	return &Client{
		endpoint: fmt.Sprintf("https://%s/json-rpc/%s", mvip, version),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type rpcRequest struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
	ID     string      `json:"id"`
}

type rpcFault struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (f *rpcFault) Error() string {
	return fmt.Sprintf("%s: %s", f.Name, f.Message)
}

type rpcResponse struct {
	ID     string          `json:"id"`
	Error  *rpcFault       `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// call performs one JSON-RPC request and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params, out interface{}) error {
	if params == nil {
		params = map[string]interface{}{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		Method: method,
		Params: params,
		ID:     uuid.NewString(),
	})
	if err != nil {
		return core.WrapErr(method, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return core.WrapErr(method, "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	log.Debug().Str("method", method).Str("endpoint", c.endpoint).Msg("API call")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.WrapErr(method, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.WrapErr(method, "", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return core.Errorf(core.KindTransport, method, "", "authentication failed for %q", c.username)
	}
	if resp.StatusCode != http.StatusOK {
		return core.Errorf(core.KindTransport, method, "", "unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return core.Errorf(core.KindTransport, method, "", "malformed response: %v", err)
	}
	if rpcResp.Error != nil {
		log.Debug().Str("method", method).Str("fault", rpcResp.Error.Name).Msg("API fault")
		return mapFault(method, rpcResp.Error)
	}

	if out != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return core.Errorf(core.KindTransport, method, "", "malformed result: %v", err)
		}
	}
	return nil
}

// ListClusterAdmins returns every administrative account on the cluster.
func (c *Client) ListClusterAdmins(ctx context.Context) ([]ClusterAdmin, error) {
	var result listClusterAdminsResult
	if err := c.call(ctx, "ListClusterAdmins", nil, &result); err != nil {
		return nil, err
	}
	return result.ClusterAdmins, nil
}

// AddClusterAdmin creates a cluster-authenticated admin account.
func (c *Client) AddClusterAdmin(ctx context.Context, username, password string, acc []string, acceptEula bool) (*ClusterAdmin, error) {
	params := map[string]interface{}{
		"username":   username,
		"password":   password,
		"access":     acc,
		"acceptEula": acceptEula,
	}
	var result addClusterAdminResult
	if err := c.call(ctx, "AddClusterAdmin", params, &result); err != nil {
		return nil, err
	}
	return &ClusterAdmin{
		ID:         result.ClusterAdminID,
		Username:   username,
		Access:     acc,
		AuthMethod: AuthCluster,
	}, nil
}

// AddLdapClusterAdmin creates a directory-authenticated admin account.
// The cluster stores no password for these; authentication happens against
// the external directory.
func (c *Client) AddLdapClusterAdmin(ctx context.Context, username string, acc []string, acceptEula bool) (*ClusterAdmin, error) {
	params := map[string]interface{}{
		"username":   username,
		"access":     acc,
		"acceptEula": acceptEula,
	}
	var result addClusterAdminResult
	if err := c.call(ctx, "AddLdapClusterAdmin", params, &result); err != nil {
		return nil, err
	}
	return &ClusterAdmin{
		ID:         result.ClusterAdminID,
		Username:   username,
		Access:     acc,
		AuthMethod: AuthLdap,
	}, nil
}

// ModifyClusterAdmin updates access and, when non-empty, the password of
// an existing admin in a single call.
func (c *Client) ModifyClusterAdmin(ctx context.Context, id int64, password string, acc []string) (*ClusterAdmin, error) {
	params := map[string]interface{}{
		"clusterAdminID": id,
		"access":         acc,
	}
	if password != "" {
		params["password"] = password
	}
	if err := c.call(ctx, "ModifyClusterAdmin", params, nil); err != nil {
		return nil, err
	}
	return &ClusterAdmin{ID: id, Access: acc}, nil
}

// RemoveClusterAdmin deletes an admin account by id.
func (c *Client) RemoveClusterAdmin(ctx context.Context, id int64) error {
	params := map[string]interface{}{"clusterAdminID": id}
	return c.call(ctx, "RemoveClusterAdmin", params, nil)
}

// GetClusterInfo fetches cluster identity facts.
func (c *Client) GetClusterInfo(ctx context.Context) (*ClusterInfo, error) {
	var result getClusterInfoResult
	if err := c.call(ctx, "GetClusterInfo", nil, &result); err != nil {
		return nil, err
	}
	return &result.ClusterInfo, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
