package realtime

import "encoding/json"

// Event names pushed by the server.
const (
	EventSOSAlert  = "sos_alert"
	EventNewReport = "new_report"
)

// frame is the wire envelope for every push event.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EmergencyAlert is the payload of a sos_alert event.
type EmergencyAlert struct {
	UserName string `json:"user_name"`
	RideID   int64  `json:"ride_id"`
}

// NewReport is the payload of a new_report event.
type NewReport struct {
	RideID int64 `json:"ride_id"`
}
