// Package services is the application layer the CLI talks to.
//
// Every entity has a service exposing the local, offline-first operations
// (GetAllLocal, AddLocal, UpdateLocal, SoftDeleteLocal) plus FullSync.
// Writes go straight to the local store and then nudge the sync manager;
// they never wait for the network.
package services
