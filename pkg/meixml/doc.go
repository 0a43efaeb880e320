// Package meixml provides a streaming XML event interface for MEI documents.
package meixml
