// Package forumtest provides an in-memory ledger running the forum program, for
// testing code built on the forum client without a validator.
package forumtest
