// Package model defines the data types shared across BuyOrWait.
//
// Conventions:
//   - Prices: float64 in the source table's currency unit
//   - Dates: time.Time truncated to midnight UTC
package model
