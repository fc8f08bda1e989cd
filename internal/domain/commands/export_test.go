package commands

import "time"

// IsTrackedManifest exports isTrackedManifest for testing.
var IsTrackedManifest = isTrackedManifest //nolint:gochecknoglobals // test export

// FakeTicketKey exports the dry-run key for testing.
const FakeTicketKey = fakeTicketKey

// SetSubmitDelay overrides the pacing between live submissions for testing.
func (it *TicketsCommand) SetSubmitDelay(delay time.Duration) {
	it.submitDelay = delay
}
