package driven

import "time"

// Clock abstracts time so rate-limit waits can be tested without sleeping.
// github.com/benbjohnson/clock satisfies it.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}
