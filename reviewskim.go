// Package reviewskim ingests movie metadata, user reviews and ranked movie
// charts from a movie-information site and stores them for downstream
// summarization.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package reviewskim
