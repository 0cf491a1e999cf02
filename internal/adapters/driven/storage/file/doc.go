// Package file provides the JSON file snapshot store.
package file
