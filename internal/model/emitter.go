package model

// Emitter delivers events from the provisioning worker to the observer. The
// worker is the only producer; implementations must preserve call order.
type Emitter func(Event)
