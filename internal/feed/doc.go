// Package feed fetches and decodes the court-booking availability feed.
package feed
