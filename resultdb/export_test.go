// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultdb

import "time"

// SetNow makes the archive record t as the creation time of new runs
// and returns a function restoring the real clock.
func SetNow(t time.Time) func() {
	now = func() time.Time { return t }
	return func() { now = time.Now }
}
