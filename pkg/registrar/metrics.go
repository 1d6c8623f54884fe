// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package registrar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation result labels.
const (
	resultRegistered = "registered"
	resultSkipped    = "skipped"
	resultBlocked    = "blocked"
	resultRemoved    = "removed"
	resultError      = "error"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modwire_registrations_total",
			Help: "Total number of registration operations by category and result",
		},
		[]string{"category", "result"},
	)

	deregistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modwire_deregistrations_total",
			Help: "Total number of deregistration operations by result",
		},
		[]string{"result"},
	)
)
