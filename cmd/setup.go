package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/reef/internal/accounts"
	"github.com/melih-ucgun/reef/internal/config"
	"github.com/melih-ucgun/reef/internal/core"
	"github.com/melih-ucgun/reef/internal/element"
)

// target is everything a command needs to run against one cluster.
type target struct {
	cfg     *config.Config
	cluster *config.Cluster
	client  *element.Client
	session *core.Session
	items   []core.Applyable
}

// connect loads the config, builds the API client for the selected cluster
// and fills the session with cluster facts.
func connect(cmd *cobra.Command, dryRun bool) (*target, error) {
	configPath, _ := cmd.Flags().GetString("config")
	clusterName, _ := cmd.Flags().GetString("cluster")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cluster, err := cfg.Cluster(clusterName)
	if err != nil {
		return nil, err
	}

	client := element.NewClient(cluster.MVIP, cluster.APIVersion,
		cluster.Username, cluster.Password, 30*time.Second)

	sess := core.NewSession(context.Background(), dryRun)
	sess.MVIP = cluster.MVIP
	sess.Version = cluster.APIVersion
	if sess.Version == "" {
		sess.Version = element.DefaultAPIVersion
	}

	info, err := client.GetClusterInfo(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to reach cluster %q: %w", cluster.MVIP, err)
	}
	sess.Cluster = info.Name
	sess.NodeCount = len(info.Ensemble)

	items := make([]core.Applyable, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		items = append(items, accounts.New(a.Desired(), client))
	}

	return &target{cfg: cfg, cluster: cluster, client: client, session: sess, items: items}, nil
}
