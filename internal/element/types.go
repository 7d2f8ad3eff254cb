package element

// AuthMethod values reported by the cluster for admin accounts.
const (
	AuthCluster = "Cluster"
	AuthLdap    = "Ldap"
)

// ClusterAdmin is an administrative account as reported by the cluster.
// The API never returns a password (or any comparable digest) for an
// admin, so there is no credential field here.
type ClusterAdmin struct {
	ID         int64    `json:"clusterAdminID"`
	Username   string   `json:"username"`
	Access     []string `json:"access"`
	AuthMethod string   `json:"authMethod,omitempty"`
}

// ClusterInfo is the subset of GetClusterInfo reef cares about: identity
// facts exposed to `when:` conditions.
type ClusterInfo struct {
	Name     string   `json:"name"`
	MVIP     string   `json:"mvip"`
	SVIP     string   `json:"svip,omitempty"`
	Ensemble []string `json:"ensemble,omitempty"`
}

type listClusterAdminsResult struct {
	ClusterAdmins []ClusterAdmin `json:"clusterAdmins"`
}

type addClusterAdminResult struct {
	ClusterAdminID int64 `json:"clusterAdminID"`
}

type getClusterInfoResult struct {
	ClusterInfo ClusterInfo `json:"clusterInfo"`
}
