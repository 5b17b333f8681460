// Package strip classifies the glucose reagent pad of a urine test strip.
//
// A photograph passes through five stages, each a pure function of its input:
//
//  1. Locate: grayscale, 5x5 Gaussian blur, Otsu threshold, largest external
//     region, axis-aligned bounding box (see Locator).
//  2. Normalize: crop to the box, rotate landscape crops 90° clockwise and
//     resize to the calibration's canonical frame (120x1400 for the
//     reference glucose strip).
//  3. ExtractPad: crop the fixed pad rectangle of the canonical frame.
//  4. SampleColor: per-channel median of the pad, converted sRGB -> CIE-Lab (D65).
//  5. Classify: CIE ΔE2000 against every template; the nearest one wins.
//
// Any stage failure ends the pipeline. The only failure a well-formed
// calibration can produce is ErrNoStripDetected.
//
// # Calibration
//
// Canonical size, pad offsets and the template table live in a Calibration
// profile. The offsets are tuned to one physical strip product; another
// product needs another profile, not another code path.
//
// # Thread Safety
//
// Analyzer holds no mutable state after construction and is safe for
// concurrent use. Input images are never modified.
package strip
