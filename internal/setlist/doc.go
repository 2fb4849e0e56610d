// Package setlist turns user input into the items the partition solver
// works on. Songs come either as LABEL:HHhMMmSSs tokens or from a setlist
// file in JSON, YAML or HCL. Every successful parse returns the items sorted
// by descending duration, the order the solver expects.
package setlist
