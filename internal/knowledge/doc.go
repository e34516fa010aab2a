// Package knowledge loads the hotel knowledge document and flattens it into
// matchable entries.
//
// A document has optional top-level sections:
//
//	db_version:     "1.4.0"
//	faq:            [{question, answer, alternates}]
//	hotel_policies: {key: value}
//	rooms:          [{room_type, description, features, price_per_night}]
//	amenities:      [{amenity_name, description, rules: {timings}}]
//	menus:          {meal: [{name, price, description}]}
//
// Missing sections are absent, not errors. A top-level list is read as the
// faq section. JSON and YAML are both accepted; the format is chosen by file
// extension. Mapping sections keep document order so that flattening is
// deterministic.
//
// Flatten turns the document into entries. Explicit FAQ pairs are copied
// through, the remaining sections synthesize canonical questions with
// alternates, and exact (question, answer) duplicates are dropped keeping the
// first occurrence.
package knowledge
