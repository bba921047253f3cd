package broadcast

import "roomly/pkg/model"

// NopBroadcaster drops every event. Used by the migration binary and tests
// that do not care about announcements.
type NopBroadcaster struct{}

func NewNopBroadcaster() *NopBroadcaster { return &NopBroadcaster{} }

func (*NopBroadcaster) Announce(Kind, *model.Booking) {}

func (*NopBroadcaster) Close() error { return nil }
