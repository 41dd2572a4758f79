// SPDX-License-Identifier: MIT

// Package simulate generates deterministic grouped datasets together with
// the parameter values that generated them, and wraps them as fitted
// *lmm.Model values.
//
// The default design mirrors the classic sleep-deprivation study: 18
// subjects observed on 10 consecutive days, a random intercept and a random
// slope on days per subject, fixed intercept 251.4 and slope 10.5.
//
// Model per observation (group g, occasion t):
//
//	y = β0 + β1·t + b0_g + b1_g·t [+ c_item] + σ·ε
//
// with (b0_g, b1_g) ~ N(0, Σ), an optional crossed item effect
// c ~ N(0, sd²) where item = (g + t) mod L, and ε ~ N(0, 1).
//
// The estimates attached to the model are the generating ("oracle") values:
// β, σ and θ = vech(chol(Σ))/σ in the layout lmm expects.
//
// Determinism:
//   - All randomness comes from a *rand.Rand seeded via WithSeed
//     (DefaultSeed otherwise); the same options always produce the same
//     model.
//
// Options validate eagerly and panic on meaningless values (negative
// counts, |corr| ≥ 1, non-positive scales). Generation itself never panics.
package simulate
