// Package feature defines the visual features a servo task is built
// from. A feature is a small vector s with a known interaction matrix L
// relating its time derivative to the camera velocity twist, ds = L*v.
//
// Kinds cover the classic set: 2-D image point with externally supplied
// depth, 3-D point, depth ratio, 3-D translation, theta-u rotation, full
// pose, plus a generic feature whose value and interaction matrix are
// set by the caller. Producers (trackers, pose estimators) update the
// feature values between control cycles; features never pull data
// themselves.
//
// Rows of L and entries of the error vector are selected with a
// Selector bitmask, one bit per component.
package feature
