// Package history provides the append-only response log owned by an
// orchestrator. The log records every agent response in the exact order the
// producing calls completed (including concurrent fan-out calls, whose order
// is serialized by the log's single writer lock) and exposes read-only
// snapshots plus on-demand metric aggregation. Clearing the log is the only
// mutation besides append.
package history
