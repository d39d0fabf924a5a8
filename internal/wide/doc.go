// Package wide provides SIMD-friendly wide types for the rasterizer's
// lane-width (W) abstraction.
//
// This package implements wide types (F32x8, I32x8) designed to enable Go
// compiler auto-vectorization. By using fixed-size arrays and simple loops,
// these types allow the compiler to generate SIMD instructions on supported
// architectures (SSE, AVX, NEON) without exposing lane width past this
// package's boundary.
//
// # Wide Types
//
//   - F32x8: Lanes float32 values — vertex position/attribute components,
//     barycentric and 1/w interpolation.
//   - I32x8: Lanes int32 values — 24.8 fixed-point edge equation evaluation
//     for the early-rast coverage test.
//   - VertexRecord: Structure-of-Arrays vertex batch (Lanes vertices, up to
//     SlotMax attribute slots each) — the fetch/vertex shader contract.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//   - Lane width lives in one constant (Lanes); nothing outside this
//     package hardcodes 8
package wide
