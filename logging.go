package goshogi

import (
	"github.com/icco/gutil/logging"
)

const (
	// GCPProject is the project this runs in.
	GCPProject = "icco-cloud"

	// Service is the name of this service.
	Service = "goshogi"
)

var (
	log = logging.Must(logging.NewLogger(Service))
)
