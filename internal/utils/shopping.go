package utils

import "net/url"

// Google Shopping, fixed to US English.
const shoppingSearchBase = "https://www.google.com/search?tbm=shop&hl=en&gl=us&q="

// ShoppingSearchURL builds the external shopping link for a suggested query.
func ShoppingSearchURL(query string) string {
	return shoppingSearchBase + url.QueryEscape(query)
}
