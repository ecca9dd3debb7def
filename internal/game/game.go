package game

// Version of the dashboard.
// Bumping this number will eventually make browsers reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart. This is useful
// during development.
var Version = "v0.1.0"

// NumPlayers seated at a table.
const NumPlayers = 3

// HandSize is the number of cards dealt to each player, before the landlord
// takes the bottom cards.
const HandSize = 17

// NumBottomCards set aside during the deal.
const NumBottomCards = 3

// PlayerIDs used by the game server for its three seats.
var PlayerIDs = [NumPlayers]string{"human", "bot1", "bot2"}
