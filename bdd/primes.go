// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import "math/big"

// smallPrimes are used to discard most candidates before calling ProbablyPrime.
var smallPrimes = [...]int{3, 5, 7, 11, 13}

// bdd_prime_gte returns the smallest odd prime greater or equal to src. It is
// used for sizing the node table and the operation caches.
func bdd_prime_gte(src int) int {
	if src < 3 {
		return 3
	}
	if src%2 == 0 {
		src++
	}
	for ; ; src += 2 {
		if hasSmallFactor(src) {
			continue
		}
		// ProbablyPrime is 100% accurate for inputs less than 2⁶⁴.
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
	}
}

func hasSmallFactor(src int) bool {
	for _, p := range smallPrimes {
		if src != p && src%p == 0 {
			return true
		}
	}
	return false
}
