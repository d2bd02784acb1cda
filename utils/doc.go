// Package utils provides small formatting helpers shared by the board packages.
//
// It contains:
//   - Time formatting for live arrival predictions
//   - Coordinate formatting for vehicle positions
package utils
