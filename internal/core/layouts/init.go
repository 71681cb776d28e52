// Package layouts registers the sheet layouts with the core registry.
// Import this package for its side effects before building a catalog.
package layouts
