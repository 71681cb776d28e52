// Package core turns the published product spreadsheets into a catalog.
//
// This package holds the catalog's domain logic independent of any
// transport. It is used by the HTTP server, the static generation CLI and
// tests without modification.
//
// # Pipeline
//
//	sheet text -> [Tokenize] -> rows -> [Classify] (fold) -> [Assemble] -> [Filter]/[Localize] -> exporters
//
// [Tokenize] splits text into rows of trimmed cells, honoring quoted fields.
// [Classify] is a pure fold step: given a [ParseState] and a row, it returns
// the next state and whether the row was noise, a category label or a
// product. [Assemble] runs the fold over every sheet in declared order so
// SKUs stay stable for a given source.
//
// # Layouts
//
// Column meaning is positional. Each sheet schema is a [Layout] registered
// at init time from the layouts package:
//
//	core.RegisterLayout(core.Layout{
//	    Key:        "standard",
//	    MinColumns: 3,
//	    PrimaryCol: 2,
//	    ...
//	})
//
// # Prices
//
// Every exporter obtains displayable prices through [PriceFor], which is the
// single place that knows how bakery and standard products are priced in
// RUB and in export currencies.
//
// # Error Handling
//
// Malformed rows and unparsable numbers are never errors. The only build
// failure is a [SourceFetchError] (or a misconfigured layout). Technical
// errors are mapped to user-facing messages with [MapError]:
//
//   - SRC001-SRC003: Source errors (unavailable, too large, encoding)
//   - CAT001-CAT002: Catalog errors (not found, unknown layout)
//   - EXP001-EXP002: Export errors (format, currency)
//   - REQ001-REQ003: Request errors (parameters, cancellation, timeout)
package core
