// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordAllocRelease(t *testing.T) {
	allocs := testutil.ToFloat64(BufferAllocations)
	releases := testutil.ToFloat64(BufferReleases)
	bytes := testutil.ToFloat64(BufferBytes)

	RecordAlloc(128)
	RecordAlloc(64)
	RecordRelease(128)

	require.Equal(t, allocs+2, testutil.ToFloat64(BufferAllocations))
	require.Equal(t, releases+1, testutil.ToFloat64(BufferReleases))
	require.Equal(t, bytes+64, testutil.ToFloat64(BufferBytes))

	RecordRelease(64)
	require.Equal(t, bytes, testutil.ToFloat64(BufferBytes))
}

func TestRecordAllocFailure(t *testing.T) {
	before := testutil.ToFloat64(AllocationFailures)
	RecordAllocFailure()
	require.Equal(t, before+1, testutil.ToFloat64(AllocationFailures))
}

func TestRecordStatus(t *testing.T) {
	before := testutil.ToFloat64(StatusErrors.WithLabelValues("ESING"))
	RecordStatus("ESING")
	RecordStatus("ESING")
	require.Equal(t, before+2, testutil.ToFloat64(StatusErrors.WithLabelValues("ESING")))
}

func TestTimeKernel(t *testing.T) {
	done := TimeKernel("test_kernel")
	time.Sleep(time.Millisecond)
	done()

	RecordKernelDuration("test_kernel", 5*time.Millisecond)
	require.Equal(t, 1, testutil.CollectAndCount(KernelDuration))
}
