/*
   Copyright 2026 The UltraSuite Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ultraerr",
		Subsystem: "dispatch",
		Name:      "dispatches_total",
		Help:      "Error reports offered to the handler chain.",
	})

	handlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ultraerr",
		Subsystem: "dispatch",
		Name:      "handler_failures_total",
		Help:      "Handler errors and panics contained by the dispatcher.",
	}, []string{"handler"})
)
