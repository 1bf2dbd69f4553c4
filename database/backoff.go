/*
 * Copyright 2025 ApekshaTeotia.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"math"
	"math/rand"
	"time"
)

const backoffGrowthFactor = 1.5

// reconnectBackoff computes the delay before a reconnect attempt:
// min(maxDelay, baseDelay * 1.5^(attempt-1) * jitter), jitter uniform
// in [0.5, 1.5). Attempt numbering starts at 1.
type reconnectBackoff struct {
	baseDelay time.Duration
	maxDelay  time.Duration
	jitter    func() float64
}

func newReconnectBackoff(baseDelay, maxDelay time.Duration) *reconnectBackoff {
	if baseDelay <= 0 {
		baseDelay = time.Second * 5
	}
	if maxDelay <= 0 {
		maxDelay = time.Second * 30
	}
	return &reconnectBackoff{
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
		jitter:    func() float64 { return 0.5 + rand.Float64() },
	}
}

// Delay returns the backoff delay for the given attempt number.
func (b *reconnectBackoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	scaled := float64(b.baseDelay) * math.Pow(backoffGrowthFactor, float64(attempt-1)) * b.jitter()
	if scaled > float64(b.maxDelay) {
		return b.maxDelay
	}
	return time.Duration(scaled)
}
