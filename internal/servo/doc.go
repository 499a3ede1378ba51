// Package servo implements the task-function core of a visual servo
// loop. A Task stacks visual features into an error vector e and an
// interaction matrix L, inverts L through the pinv service and returns
// the velocity command v = -lambda * L+ * e, optionally folding a
// camera twist and a robot Jacobian into L for joint-space control and
// injecting a secondary objective through the null-space projector.
//
// The control cycle is synchronous: the engine holds no goroutines,
// channels or locks. Callers own the cycle cadence and must not share
// one Task across goroutines.
package servo
