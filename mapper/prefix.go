/*
   Copyright 2025 The DIRPX Authors

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

package mapper

import (
	"fmt"

	"dirpx.dev/redbox/reason"
)

// prefixTable resolves the longest registered prefix of a reason.
//
// Reasons have at most reason.MaxSegments segments, so walking r, its
// parent, its grandparent and so on costs at most that many map lookups.
type prefixTable[V any] map[reason.Reason]V

// compilePrefixes validates rules and builds a table. A later rule for the
// same prefix replaces an earlier one.
func compilePrefixes[V any](rules []prefixRule, conv func(int) V) (prefixTable[V], error) {
	t := make(prefixTable[V], len(rules))
	for _, r := range rules {
		p, err := reason.Parse(r.prefix)
		if err != nil {
			return nil, err
		}
		if p == reason.Empty {
			return nil, fmt.Errorf("empty prefix")
		}
		t[p] = conv(r.val)
	}
	return t, nil
}

// match returns the value of the longest prefix of r, and that prefix.
func (t prefixTable[V]) match(r reason.Reason) (v V, pattern reason.Reason, ok bool) {
	for p := r; p != reason.Empty; p = p.Parent() {
		if v, ok := t[p]; ok {
			return v, p, true
		}
	}
	return v, reason.Empty, false
}
