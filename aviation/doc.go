// Package aviation holds the records the ranking works on: airports with
// their coordinates, airlines, and the flights connecting them.
package aviation
