package history

import "time"

// Metrics is a read-only aggregation over a log snapshot. Values are computed
// on demand so they can never desynchronize from the log itself.
type Metrics struct {
	TotalResponses int            `json:"total_responses"`
	TotalBytes     int            `json:"total_bytes"` // Sum of content lengths
	ByAgent        map[string]int `json:"by_agent"`
	First          time.Time      `json:"first,omitempty"`
	Last           time.Time      `json:"last,omitempty"`
}

// Metrics computes aggregate counts from a snapshot of the log.
func (l *Log) Metrics() Metrics {
	snapshot := l.Snapshot()

	m := Metrics{
		TotalResponses: len(snapshot),
		ByAgent:        make(map[string]int, 4),
	}
	for i, resp := range snapshot {
		m.TotalBytes += len(resp.Content)
		m.ByAgent[resp.AgentName]++
		if i == 0 {
			m.First = resp.CreatedAt
		}
		m.Last = resp.CreatedAt
	}
	return m
}
