// Package deadline derives the time-based views: the current teaching week,
// upcoming exam-like assessments and what remains to do this week. Every
// function is pure over the catalog, the progress record and a caller-supplied
// now.
package deadline
