// Package chemexpr implements a small expression language for chemical
// entities.
//
// Expressions are identifiers like H or 'water, string literals, unsigned
// integers, reals like 1.5 or #6.02e23, tuples, infix chains like a + b * c,
// and molecular formulas like $H2O or $SO4-2. A formula is a run of identifiers
// and subscripts following $, optionally ending in a charge sign and
// magnitude; whitespace ends it. Special syntax blocks like ion!{SO4-2} are
// recognized for names registered with WithSyntax.
//
// Parse turns source text into an Expr without backtracking. Evaluating an
// Expr with a Dictionary looks up identifiers and collects formulas into
// elements with subscripts. Infix chains, tuples, special syntax, and charged
// formulas parse but do not evaluate.
//
package chemexpr
