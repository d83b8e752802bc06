package service

import (
	"strings"

	"github.com/wealthpath/onboard/core"
)

type requiredField struct {
	name  string
	value string
}

// requireAll evaluates a per-endpoint schema of required fields: every
// value must be non-blank after trimming. The returned ValidationError
// names the blank fields in schema order.
func requireAll(fields ...requiredField) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &core.ValidationError{Fields: missing}
	}
	return nil
}
