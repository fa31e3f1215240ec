// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.ObserveInference("fused", 3*time.Millisecond)
	r.ObserveInference("fused", 5*time.Millisecond)
	r.ObserveInference("sequential", time.Millisecond)
	r.ObserveError("parallel")
	r.IncMismatch("parallel")
	r.IncMismatch("parallel")
	r.SetWorkers(8)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.inferences.WithLabelValues("fused", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.inferences.WithLabelValues("sequential", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.inferences.WithLabelValues("parallel", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.mismatches.WithLabelValues("parallel")))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.workers))
	assert.Equal(t, 2, testutil.CollectAndCount(r.inferenceDuration))
}

func TestRecordersAreIndependent(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	a.IncMismatch("fused")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.mismatches.WithLabelValues("fused")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.mismatches))
}

func TestWriteToTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveInference("sequential", 2*time.Millisecond)
	r.SetWorkers(4)

	path := filepath.Join(t.TempDir(), "hdc.prom")
	require.NoError(t, r.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "hdc_pool_workers 4")
	assert.Contains(t, text, `hdc_inferences_total{result="ok",strategy="sequential"} 1`)
	assert.Contains(t, text, "hdc_inference_duration_seconds_bucket")

	assert.Error(t, r.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "dir", "hdc.prom")))
}
