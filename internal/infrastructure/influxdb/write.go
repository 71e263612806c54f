package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteOperationMetric records one control-layer operation against a
// device property: the kind of operation ("set", "read", "trigger"),
// how long the backend took to serve it, and whether it succeeded.
//
// The write is non-blocking; data is batched and sent asynchronously.
func (c *Client) WriteOperationMetric(op, devID, property string, duration time.Duration, success bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"control_ops",
		map[string]string{
			"op":       op,
			"dev_id":   devID,
			"property": property,
		},
		map[string]interface{}{
			"duration_seconds": duration.Seconds(),
			"success":          success,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteValueMetric records a scalar value that passed through the
// control layer for a device property.
//
// Example:
//
//	client.WriteValueMetric("QF1PC", "set_current", 3.7)
func (c *Client) WriteValueMetric(devID, property string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_values",
		map[string]string{
			"dev_id":   devID,
			"property": property,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
