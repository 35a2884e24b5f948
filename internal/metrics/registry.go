package metrics

import "sync/atomic"

// Counters for correlation window outcomes and modlog delivery, read by the
// /botinfo command. Incremented from many goroutines, so everything is atomic.
var (
	windowsResolved  atomic.Uint64
	windowsUnmatched atomic.Uint64
	windowsRejected  atomic.Uint64
	casesCreated     atomic.Uint64
	publishFailures  atomic.Uint64
)

func IncWindowResolved()  { windowsResolved.Add(1) }
func IncWindowUnmatched() { windowsUnmatched.Add(1) }
func IncWindowRejected()  { windowsRejected.Add(1) }
func IncCaseCreated()     { casesCreated.Add(1) }
func IncPublishFailure()  { publishFailures.Add(1) }

type Stats struct {
	WindowsResolved  uint64
	WindowsUnmatched uint64
	WindowsRejected  uint64
	CasesCreated     uint64
	PublishFailures  uint64
}

func Snapshot() Stats {
	return Stats{
		WindowsResolved:  windowsResolved.Load(),
		WindowsUnmatched: windowsUnmatched.Load(),
		WindowsRejected:  windowsRejected.Load(),
		CasesCreated:     casesCreated.Load(),
		PublishFailures:  publishFailures.Load(),
	}
}
