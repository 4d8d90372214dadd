// bundlefx/bundlefx.go
package bundlefx

import (
	"go.uber.org/fx"

	"github.com/RyanR100/ServiceStack/pkg/middleware/auth"
	"github.com/RyanR100/ServiceStack/pkg/middleware/logger"
	"github.com/RyanR100/ServiceStack/pkg/middleware/metrics"
)

// Module provided to fx
var Module = fx.Options(
	auth.Module,
	logger.Module,
	metrics.Module,
)
