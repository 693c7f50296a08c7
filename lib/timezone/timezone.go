package timezone

import (
	"os"
	"time"
)

var Location *time.Location

func init() {
	name := os.Getenv("REPORT_TIMEZONE")
	if name == "" {
		name = "America/Los_Angeles"
	}
	var err error
	Location, err = time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
}

// Now pins the clock to the report timezone so that date math in report
// headings doesn't shift when the job runs on a server in another region.
func Now() time.Time {
	return time.Now().In(Location)
}
