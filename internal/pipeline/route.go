package pipeline

import (
	"context"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

// RouteParams moves body content into query parameters for read methods and
// leaves it in place for mutating methods. The stage is idempotent: a
// descriptor already marked preprocessed passes through unchanged, so queue
// replays do not route twice.
func RouteParams() Stage {
	return Stage{
		Name: "param-routing",
		Apply: func(_ context.Context, d *request.Descriptor) error {
			if d.IsPreprocessed {
				return nil
			}
			d.IsPreprocessed = true

			if !request.IsReadMethod(d.Method) {
				return nil
			}

			if d.Query == nil {
				d.Query = make(map[string]string, len(d.Body))
			}
			for key, value := range d.Body {
				d.Query[key] = formatField(value)
			}
			d.Body = map[string]any{}
			return nil
		},
	}
}
