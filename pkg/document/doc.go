// Package document defines the host document contract observed by the
// inspector, plus an in-memory Buffer implementation of it.
//
// Offsets and lengths are measured in UTF-16 code units, so a scalar value
// outside the Basic Multilingual Plane occupies two units.
package document
