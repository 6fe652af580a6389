// Package ranking ranks airlines by the total great-circle distance of their
// flights departing a given origin airport.
//
// A Pipeline fetches airlines, airports and flights concurrently from three
// data sources, joins them, and publishes the ranking together with a
// loading flag and the latest fetch error through observable states:
//
//	p := ranking.New(ranking.Sources{Airlines: a, Airports: ap, Flights: f})
//	p.Result().Subscribe(observable.Main(), render)
//	p.LoadRanking(ctx, origin)
//
// A failed source is replaced by an empty list, so every cycle publishes a
// (possibly partial) result. Cycles started by concurrent LoadRanking calls
// run one after another in call order.
package ranking
