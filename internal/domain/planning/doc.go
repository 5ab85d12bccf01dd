// Package planning allocates a periodic extra budget across an owner's goals and
// projects when each goal completes.
//
// Everything in this package is a pure function of its arguments: goals are taken by
// value, nothing is cached, nothing is persisted and nothing is logged. Calling any
// operation twice with the same inputs yields the same result, and the functions are
// safe for concurrent use. Persisting an accepted plan is the caller's job.
//
// Allocation is a strict priority waterfall. Goals are ordered by priority, then by
// creation time, then by their position in the input. Each goal asks for the
// contribution its target date requires, or its planned contribution, or an equal
// share of whatever the rate-bearing goals leave over. Each ask is capped at the
// amount the goal still needs and served in order until the envelope runs out; what
// is left is returned as the remainder. All arithmetic uses decimal amounts, so
// allocations plus remainder always equal the envelope exactly.
package planning
