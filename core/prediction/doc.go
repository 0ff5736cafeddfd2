// Package prediction defines the regression model used to estimate the energy
// a charging session at a given station will draw. Models are loaded once at
// startup and are safe for concurrent use because Predict never mutates them.
package prediction
