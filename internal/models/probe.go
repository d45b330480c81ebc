package models

// ProbeResult is the outcome of a reachability check. ResponseTime is in
// seconds and only set when a reply arrived.
type ProbeResult struct {
	Reachable    bool     `json:"reachable"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	ResolvedIP   string   `json:"resolved_ip,omitempty"`
	Error        string   `json:"error,omitempty"`
}
