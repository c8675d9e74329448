// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deck

import "github.com/danielhkuo/quickly-rank/ranking"

// SampleName is the source name reported for the built-in deck.
const SampleName = "sample.csv"

// Sample returns the built-in deck used when no items are supplied.
func Sample() []ranking.Item {
	return []ranking.Item{
		{ID: ranking.IntID(1), Title: "Modern City Apartment", Description: "Sleek design in the heart of the city.", ImageURL: "https://placehold.co/600x400/a2d2ff/ffffff?text=City+Apt"},
		{ID: ranking.IntID(2), Title: "Cozy Country Cottage", Description: "Rustic charm surrounded by nature.", ImageURL: "https://placehold.co/600x400/ffafcc/ffffff?text=Cottage"},
		{ID: ranking.IntID(3), Title: "Tropical Beach Villa", Description: "Ocean views and sandy shores.", ImageURL: "https://placehold.co/600x400/bde0fe/ffffff?text=Beach+Villa"},
		{ID: ranking.IntID(4), Title: "Mountain Log Cabin", Description: "Warm fireplace and mountain air.", ImageURL: "https://placehold.co/600x400/cddafd/ffffff?text=Cabin"},
		{ID: ranking.IntID(5), Title: "Suburban Family Home", Description: "Spacious and comfortable for families.", ImageURL: "https://placehold.co/600x400/fcf6bd/ffffff?text=Suburban"},
		{ID: ranking.IntID(6), Title: "Minimalist Loft", Description: "Open space with industrial vibes.", ImageURL: "https://placehold.co/600x400/d0f4de/ffffff?text=Loft"},
		{ID: ranking.IntID(7), Title: "Historic Townhouse", Description: "Classic architecture and elegance.", ImageURL: "https://placehold.co/600x400/e4c1f9/ffffff?text=Townhouse"},
		{ID: ranking.IntID(8), Title: "Riverside Retreat", Description: "Peaceful living by the water.", ImageURL: "https://placehold.co/600x400/f7d1cd/ffffff?text=Riverside"},
	}
}
