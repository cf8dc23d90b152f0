// Package domain defines the payload model and the store contract shared
// across the app. It contains plain types and interfaces only.
package domain
