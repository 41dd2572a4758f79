// SPDX-License-Identifier: MIT

// Package render turns ranef tables into plot layers and hands them to a
// Canvas. It owns the presentation math (display order, prediction
// intervals) and nothing else: drawing is the Canvas implementation's job
// (see render/termcanvas for a terminal one).
package render
