/*
Package filter builds key and topic filters on top of keyglob patterns.

A filter is a Matcher. Single patterns come from NewGlob; they are combined
with And, Or and Not, or declared as a SimpleExpr:

	includes: ["orders.*", "payments.*"]
	excludes: ["*.debug"]

which reads as

	(includes[0] || includes[1] || ...) && !(excludes[0] || excludes[1] || ...)

The pattern syntax is:

	pattern:
	    { term }
	term:
	    '*'         matches any sequence of bytes
	    '?'         matches any single byte
	    '[' [ '^' ] { class-member } ']'
	                matches one byte from the class (or not in it, with '^')
	    c           matches byte c (c != '*', '?', '\\', '[')
	    '\\' c      matches byte c

	class-member:
	    c           matches byte c
	    '\\' c      matches byte c
	    lo '-' hi   matches byte c for lo <= c <= hi (bounds may be reversed)

Filters never fail at match time. Use Limits to refuse oversize input and to
bound the backtracking work of a single match.
*/
package filter
