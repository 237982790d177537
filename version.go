package automata

// Version is the library release version, surfaced by the CLI and the
// HTTP /info endpoint.
const Version = "0.4.0"
