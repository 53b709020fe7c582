// Package clock adapts the wall clock to the time-oracle port. The
// auction engine reads it once per operation; tests substitute a fake.
package clock

import "time"

type System struct{}

func NewSystem() System {
	return System{}
}

func (System) NowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}
