// SPDX-License-Identifier: MIT

package render

import "errors"

// ErrNilCanvas is returned when a nil Canvas is passed.
var ErrNilCanvas = errors.New("render: nil canvas")
