// Package extract decodes strategy relations into Mealy machines.
//
// Relations are enumerated as satisfying cubes; don't-care bits are
// expanded so every concrete position pair is seen, and codes outside the
// game's position range are skipped and counted in Stats. The
// deterministic policy keeps the first edge per state and input, the
// pervasive policy keeps every winning edge.
package extract
