package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementGeneration = "generation"
	MeasurementMilestone  = "milestone"
)

// GenerationSample describes one committed generation.
type GenerationSample struct {
	RunID      string
	Generation int
	Population int
	Cells      int
	At         time.Time
}

// Milestone describes a lifecycle signal such as stabilization.
type Milestone struct {
	RunID      string
	Signal     string
	Generation int
	At         time.Time
}

// GenerationPoint builds the point written for s.
func GenerationPoint(s GenerationSample) *write.Point {
	fields := map[string]interface{}{
		"generation": s.Generation,
		"population": s.Population,
	}
	if s.Cells > 0 {
		fields["density"] = float64(s.Population) / float64(s.Cells)
	}
	return write.NewPoint(MeasurementGeneration, map[string]string{"run_id": s.RunID}, fields, s.At)
}

// MilestonePoint builds the point written for m.
func MilestonePoint(m Milestone) *write.Point {
	return write.NewPoint(
		MeasurementMilestone,
		map[string]string{"run_id": m.RunID, "signal": m.Signal},
		map[string]interface{}{"generation": m.Generation},
		m.At,
	)
}

// WriteGeneration queues a generation sample. It is a no-op when closed.
func (c *Client) WriteGeneration(s GenerationSample) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(GenerationPoint(s))
}

// WriteMilestone queues a milestone. It is a no-op when closed.
func (c *Client) WriteMilestone(m Milestone) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(MilestonePoint(m))
}
