// Package rules holds deterministic domain rules that answer before ranking.
//
// RoomRouter answers room-type questions straight from the room records:
//
//   - "what room types do you have" lists every known type
//   - a query naming a room size (single, double, twin, queen, king) gets
//     that room's details, or an "unavailable" answer listing the
//     alternatives when the hotel has no such room
//
// Rules either fire with a complete answer at confidence 1.0 or decline.
// They never consult the scoring backend.
package rules
