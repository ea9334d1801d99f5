package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

// Template substitutes {name} placeholders in the URL from same-named body
// fields. A substituted field is removed from the body unless keepFields is
// set. Placeholders with no matching body field are left untouched.
func Template(keepFields bool) Stage {
	return Stage{
		Name: "url-template",
		Apply: func(_ context.Context, d *request.Descriptor) error {
			if !strings.Contains(d.URL, "{") {
				return nil
			}

			for key, value := range d.Body {
				placeholder := "{" + key + "}"
				if !strings.Contains(d.URL, placeholder) {
					continue
				}
				d.URL = strings.ReplaceAll(d.URL, placeholder, formatField(value))
				if !keepFields {
					delete(d.Body, key)
				}
			}
			return nil
		},
	}
}

// formatField renders a body field into a path segment. Integral floats are
// printed without a decimal point because JSON decoding widens numbers to
// float64.
func formatField(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
