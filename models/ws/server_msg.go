package wsmodels

// ServerMessage is one event pushed to a subscriber group.
type ServerMessage struct {
	Group   string      `json:"-"`       // target group, not serialized
	Event   string      `json:"event"`   // event name, e.g. WorkRequestApproved
	Time    string      `json:"time"`    // event time
	Payload interface{} `json:"payload"` // JSON-serializable event data
}

// Client commands received over the socket.
const (
	ClientActionJoin  = "join"
	ClientActionLeave = "leave"
)

type ClientMessage struct {
	Action string `json:"action"`
	Group  string `json:"group"`
}
