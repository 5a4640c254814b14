package mqtt

import "fmt"

// Topics builds the topic names for one simulation run:
//
//	{prefix}/{run}/status      retained online/offline status
//	{prefix}/{run}/event/{sig} milestone events
//	{prefix}/{run}/command     inbound control commands
type Topics struct {
	Prefix string
	RunID  string
}

func (t Topics) base() string {
	prefix := t.Prefix
	if prefix == "" {
		prefix = "toruslife"
	}
	if t.RunID == "" {
		return prefix
	}
	return fmt.Sprintf("%s/%s", prefix, t.RunID)
}

// Status returns the retained status topic.
func (t Topics) Status() string { return t.base() + "/status" }

// Event returns the topic for one milestone signal, such as "stabilized".
func (t Topics) Event(signal string) string {
	return fmt.Sprintf("%s/event/%s", t.base(), signal)
}

// Events returns a wildcard matching every milestone topic.
func (t Topics) Events() string { return t.base() + "/event/+" }

// Command returns the inbound command topic.
func (t Topics) Command() string { return t.base() + "/command" }
