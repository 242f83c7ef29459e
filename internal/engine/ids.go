package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// newID builds ticket identifiers as prefix + UTC timestamp + short uuid
// suffix. Readable at kiosk scale; the uuid suffix keeps same-second
// submissions apart without cryptographic guarantees.
func newID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + now.UTC().Format("20060102150405") + "-" + suffix
}
