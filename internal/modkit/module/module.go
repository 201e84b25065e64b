// Package module defines what an API module exposes and how siblings find its ports
package module

import phttp "bankingops/internal/platform/net/http"

// Module mounts routes and exposes a port bundle for sibling modules
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
