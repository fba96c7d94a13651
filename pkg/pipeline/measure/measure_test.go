package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-covidsim/pkg/pipeline/measure"
)

func TestMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("compile", 2)
	assert.Same(t, mt, msr.AddMetric("compile", 4))
	assert.Nil(t, msr.GetMetric("missing"))

	assert.Equal(t, time.Duration(0), mt.AVGDuration())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mt.AddDuration(time.Duration(i+1) * time.Millisecond)
			mt.AddTransportDuration("read", 4*time.Millisecond)
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 4, mt.Count())
	assert.Equal(t, 2500*time.Microsecond, mt.AVGDuration())
	assert.Equal(t, map[string]time.Duration{"read": 2 * time.Millisecond}, mt.AVGTransportDuration())

	mt.SetTotalDuration(time.Second)
	assert.Equal(t, time.Second, mt.GetTotalDuration())
	assert.Equal(t, []string{"compile"}, msr.StepNames())
	assert.Len(t, msr.AllMetrics(), 1)
}
