package entrynum

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generate produces a date-stamped, collision-resistant entry number such
// as JE-20260115-9F1C3A2B. The suffix comes from a fresh UUID, so two
// entries created at the same instant still get distinct numbers.
func Generate(entryDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("JE-%s-%s", entryDate.Format("20060102"), suffix)
}
