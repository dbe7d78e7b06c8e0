// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

// Check exposes the arena consistency check to tests.
func Check(c *Circuit) error { return c.check() }
