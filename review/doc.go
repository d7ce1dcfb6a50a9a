// Package review implements a two-step prompt chain: generate a structured
// movie review for a title, then feed the validated review into a
// child-suitability assessment. Both steps go through schema validation;
// no partially validated value ever leaves this package.
package review
