/*
Package domain contains the core types of the pole-zero configuration store.

It defines the points edited by the user, the configuration that groups them
and the sentinel errors shared by every adapter. This package is kept pure and
free of I/O, following the Hexagonal Architecture used across the repository.

# Key Entities

  - ComplexPoint: a (magnitude, phase) pair describing a point in the complex plane.
  - Configuration: the ordered pole and zero sequences.
  - Kind: selects the pole or the zero sequence.
  - Axis: selects the magnitude or the phase component of a point.
*/
package domain
