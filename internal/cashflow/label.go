package cashflow

import (
	"fmt"
	"time"
)

var (
	weekdaysES = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	monthsES   = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
)

// Label formats a date the way the dashboard shows it, e.g. "sáb, 17 oct"
func Label(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1])
}
