// Package fio is a minimal client for the FIO REST API, the community data
// service that mirrors Prosperous Universe game state.
//
// Only the group hub endpoint is used. It returns, for a list of player handles,
// the station (CX) warehouses holding their goods and a model per player listing
// the planets where they have a base, each with an optional base store and
// warehouse store.
//
// Every failure (network, non-2xx status, undecodable body) is returned as an
// error; the client never hands back a partially decoded payload.
package fio
