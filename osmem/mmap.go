// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osmem

import "syscall"

// mmap retries mmap0 on a transient EAGAIN, which the underlying syscall
// can return under memory pressure even though the request would
// otherwise succeed.
func mmap(size int) (b []byte, err error) {
	for {
		b, err = mmap0(size)
		if err == syscall.EAGAIN {
			continue
		}
		return b, err
	}
}
