package ch

import (
	"os"
	"runtime"

	"bankingops/internal/platform/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo names this process in system.query_log: the build version
// and commit, the role (api or ctl), the Go runtime and the host
func BuildClientInfo(role string) clickhouse.ClientInfo {
	b := version.Info(role)
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	if role == "" {
		role = "unknown"
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: "bankingops", Version: b.Version},
		{Name: "role", Version: role},
		{Name: "commit", Version: b.Commit},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: host},
	}}
}
