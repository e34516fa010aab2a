// Package policy turns a guest sentiment prediction into a service action.
//
// Strongly positive feedback earns a free meal coupon and strongly negative
// feedback earns a partial refund. Everything else is acknowledged without
// an action. The package holds no state and is safe for concurrent use.
package policy
