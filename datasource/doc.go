// Package datasource defines how the ranking pipeline receives its inputs.
//
// The pipeline talks to three callback contracts (AirlinesDataSource,
// AirportsDataSource, FlightsDataSource). Each load answers exactly once,
// asynchronously, with either a list of records or an error.
//
// Concrete sources are usually built from a Fetcher, a synchronous
// "return the list or fail" function, decorated with middleware:
//
//	airlines := datasource.Airlines(datasource.Chain(
//		datasource.WithLogging[aviation.Airline](log),
//		datasource.WithRetry[aviation.Airline](resilience.DefaultRetryConfig()),
//		datasource.WithValidation[aviation.Airline](),
//	)(datasource.JSONFile[aviation.Airline]("airlines", "data/airlines.json")))
package datasource
