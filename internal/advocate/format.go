package advocate

import (
	"fmt"
	"strconv"
)

// FormatPhoneNumber renders a 10-digit national number as (555) 123-4567.
// Other lengths are returned as plain digits.
func FormatPhoneNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) != 10 {
		return s
	}
	return fmt.Sprintf("(%s) %s-%s", s[:3], s[3:6], s[6:])
}
