package telemetry

import (
	"context"
	"maps"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelController = "controller"
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelCompanyID  = "company_id"
	ProfilingLabelOperation  = "operation"
	ProfilingLabelDirection  = "sync_direction"
)

// MaxLabelValueLength caps label values to keep profile cardinality bounded.
const MaxLabelValueLength = 128

// HighCardinalityLabels are never attached to profiles.
var HighCardinalityLabels = map[string]bool{
	"user_id":    true,
	"request_id": true,
	"sale_id":    true,
	"work_id":    true,
	"trace_id":   true,
	"span_id":    true,
}

// WithProfilingLabels runs fn with pprof labels visible to Pyroscope.
// Empty and high-cardinality labels are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(maps.Clone(labels))
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// sanitizeLabels returns sorted key/value pairs with snake_case keys and
// truncated values.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	clean := make(map[string]string, len(labels))
	for key, value := range labels {
		if key == "" || value == "" || HighCardinalityLabels[key] {
			continue
		}
		k := sanitizeLabelKey(key)
		if k == "" || HighCardinalityLabels[k] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		clean[k] = value
	}

	keys := make([]string, 0, len(clean))
	for k := range clean {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, clean[k])
	}
	return pairs
}

func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// HTTPRequestLabels labels a request handled by controller on route
func HTTPRequestLabels(controller, route, method, companyID string) map[string]string {
	return map[string]string{
		ProfilingLabelController: controller,
		ProfilingLabelRoute:      route,
		ProfilingLabelMethod:     method,
		ProfilingLabelCompanyID:  companyID,
	}
}

// SyncOperationLabels labels a sale and project synchronization
func SyncOperationLabels(direction SyncDirection, companyID string) map[string]string {
	return map[string]string{
		ProfilingLabelOperation: "project_sync",
		ProfilingLabelDirection: string(direction),
		ProfilingLabelCompanyID: companyID,
	}
}
