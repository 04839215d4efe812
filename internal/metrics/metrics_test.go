package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureRecorder records calls for assertions.
type captureRecorder struct {
	storeOps []string
	httpHits []string
	ingested int
}

func (c *captureRecorder) IncStoreOpTotal(op string, success bool) {
	c.storeOps = append(c.storeOps, op)
}

func (c *captureRecorder) ObserveStoreOpSeconds(op string, success bool, s float64) {}

func (c *captureRecorder) IncHTTPRequestTotal(route string, status int) {
	c.httpHits = append(c.httpHits, route)
}

func (c *captureRecorder) ObserveHTTPRequestSeconds(route string, status int, s float64) {}

func (c *captureRecorder) AddRowsIngested(n int) { c.ingested += n }

func TestRecorderSwap(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetRecorder(orig) })

	rec := &captureRecorder{}
	SetRecorder(rec)

	TimeStoreOp("bulk_upsert")(true)
	TimeHTTPRequest("/api/upload")(200)
	Default().AddRowsIngested(10)

	assert.Equal(t, []string{"bulk_upsert"}, rec.storeOps)
	assert.Equal(t, []string{"/api/upload"}, rec.httpHits)
	assert.Equal(t, 10, rec.ingested)
}

func TestNoopRecorderIsDefault(t *testing.T) {
	// Must not panic with no recorder installed.
	TimeStoreOp("count")(false)
	Default().AddRowsIngested(1)
}
