// Package interpreter evaluates decoded CGP graphs against a dataset.
//
// Evaluation is a plain recursive descent from the Output node's input. No
// intermediate values are cached: a node read from several places is
// recomputed each time it is reached. Floating point anomalies are not errors;
// a row whose final value is NaN or infinite is reported as math.MaxFloat64 so
// that broken programs still receive a comparable, very poor fitness.
//
// Two kinds of error abort an evaluation and are returned to the caller with
// no partial result:
//
//   - an operator index that is not in the opcode table (opcode.ErrUnsupported)
//   - a violated domain constraint (ErrConstraintViolation), raised by a
//     Constraint installed with WithConstraint
//
// An Interpreter is safe for concurrent use. Its only mutable state is the
// count of evaluated solutions.
package interpreter
