// Package tsp solves closed-loop traveling-salesman tours with the anneal engine.
//
// A CityTable holds the coordinates and is shared read-only by every Tour
// copy; only the visiting order is copied on perturbation. Tours start and
// end at city 0, cost is the sum of floored Euclidean leg lengths, and a
// perturbation swaps two interior positions.
package tsp
