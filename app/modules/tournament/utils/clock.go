// Package tournamentutil holds small helpers the tournament service depends
// on: clock abstraction and deadline parsing.
package tournamentutil

import "time"

// Clock abstracts time so tests can pin it.
type Clock interface {
	Now() time.Time
	NowUTC() time.Time
}

// RealClock delegates to the time package.
type RealClock struct{}

func (RealClock) Now() time.Time    { return time.Now() }
func (RealClock) NowUTC() time.Time { return time.Now().UTC() }
