package actions

import "strings"

// Entity types attached to results.
const (
	EntityList = "list"
	EntityItem = "item"
)

// Display types.
const (
	DisplayTypeText = "text"
	DisplayTypeHTML = "html"
)

// Entity is a (name, type tags) pair emitted for downstream cross-linking.
type Entity struct {
	Name string   `json:"name"`
	Type []string `json:"type"`
}

// Result is the outbound payload handed to the renderer.
type Result struct {
	DisplayText string   `json:"displayText"`
	DisplayType string   `json:"displayType"`
	HistoryText string   `json:"historyText,omitempty"`
	Entities    []Entity `json:"entities"`

	// Found is false only for a getList on a missing list.
	Found bool `json:"found"`
}

func textResult(text string) *Result {
	return &Result{DisplayText: text, DisplayType: DisplayTypeText, HistoryText: text, Found: true, Entities: []Entity{}}
}

func htmlResult(html, history string) *Result {
	return &Result{DisplayText: html, DisplayType: DisplayTypeHTML, HistoryText: history, Found: true, Entities: []Entity{}}
}

// listEntities returns the list entity followed by one entity per item,
// in the given order.
func listEntities(name string, items []string) []Entity {
	out := make([]Entity, 0, len(items)+1)
	out = append(out, Entity{Name: name, Type: []string{EntityList}})
	for _, item := range items {
		out = append(out, Entity{Name: item, Type: []string{EntityItem}})
	}
	return out
}

// joinItems formats items the way result texts show them: comma-separated,
// no spaces.
func joinItems(items []string) string {
	return strings.Join(items, ",")
}
