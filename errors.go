package bluenoise

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidParameter is returned (wrapped) when a Config value is unusable.
	// Nothing is allocated or sampled in this case.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSampleLimit is returned alongside a partial result when
	// Config.MaxSamples points were accepted before the run finished.
	ErrSampleLimit = errors.New("sample limit reached")
)
