// Package actions turns typed list actions into store mutations and result
// payloads.
//
// The set of actions is closed: Action is a sealed interface implemented
// only by the five types in this file, and Dispatch switches over exactly
// those. Anything else can only arrive as a malformed inbound record, which
// Decode rejects with ErrUnknownAction before dispatch.
package actions

import (
	"encoding/json"
	"fmt"
)

// --- Action kind enum ---

// Kind is the wire name of an action.
type Kind string

const (
	KindAddItems    Kind = "addItems"
	KindRemoveItems Kind = "removeItems"
	KindCreateList  Kind = "createList"
	KindGetList     Kind = "getList"
	KindClearList   Kind = "clearList"
)

// Kinds lists every action kind in a stable order.
var Kinds = []Kind{KindAddItems, KindRemoveItems, KindCreateList, KindGetList, KindClearList}

// --- Action variants ---

// Action is one of AddItems, RemoveItems, CreateList, GetList, ClearList.
type Action interface {
	Kind() Kind
	isAction()
}

// AddItems inserts items into a list, creating it when absent.
type AddItems struct {
	ListName string
	Items    []string
}

// RemoveItems deletes items from a list if the list exists.
type RemoveItems struct {
	ListName string
	Items    []string
}

// CreateList creates an empty list.
type CreateList struct {
	ListName string
}

// GetList reads a list.
type GetList struct {
	ListName string
}

// ClearList empties an existing list.
type ClearList struct {
	ListName string
}

func (AddItems) Kind() Kind    { return KindAddItems }
func (RemoveItems) Kind() Kind { return KindRemoveItems }
func (CreateList) Kind() Kind  { return KindCreateList }
func (GetList) Kind() Kind     { return KindGetList }
func (ClearList) Kind() Kind   { return KindClearList }

func (AddItems) isAction()    {}
func (RemoveItems) isAction() {}
func (CreateList) isAction()  {}
func (GetList) isAction()     {}
func (ClearList) isAction()   {}

// Value returns a with pointer variants dereferenced, so &AddItems{...} and
// AddItems{...} are the same action. A nil pointer stays as is and is
// rejected by Dispatch as unknown.
func Value(a Action) Action {
	switch p := a.(type) {
	case *AddItems:
		if p != nil {
			return *p
		}
	case *RemoveItems:
		if p != nil {
			return *p
		}
	case *CreateList:
		if p != nil {
			return *p
		}
	case *GetList:
		if p != nil {
			return *p
		}
	case *ClearList:
		if p != nil {
			return *p
		}
	}
	return a
}

// --- Inbound record ---

// Record is the tagged action record produced by the action parser.
type Record struct {
	ActionName string     `json:"actionName"`
	Parameters Parameters `json:"parameters"`
}

// Parameters carries the action's bindings. Items is only meaningful for
// addItems and removeItems.
type Parameters struct {
	ListName string   `json:"listName"`
	Items    []string `json:"items,omitempty"`
}

// FromRecord converts an inbound record into its typed action.
func FromRecord(r Record) (Action, error) {
	p := r.Parameters
	switch Kind(r.ActionName) {
	case KindAddItems:
		return AddItems{ListName: p.ListName, Items: p.Items}, nil
	case KindRemoveItems:
		return RemoveItems{ListName: p.ListName, Items: p.Items}, nil
	case KindCreateList:
		return CreateList{ListName: p.ListName}, nil
	case KindGetList:
		return GetList{ListName: p.ListName}, nil
	case KindClearList:
		return ClearList{ListName: p.ListName}, nil
	default:
		return nil, &UnknownActionError{Name: r.ActionName}
	}
}

// ToRecord converts a typed action back into its wire record.
func ToRecord(a Action) Record {
	switch a := Value(a).(type) {
	case AddItems:
		return Record{ActionName: string(KindAddItems), Parameters: Parameters{ListName: a.ListName, Items: a.Items}}
	case RemoveItems:
		return Record{ActionName: string(KindRemoveItems), Parameters: Parameters{ListName: a.ListName, Items: a.Items}}
	case CreateList:
		return Record{ActionName: string(KindCreateList), Parameters: Parameters{ListName: a.ListName}}
	case GetList:
		return Record{ActionName: string(KindGetList), Parameters: Parameters{ListName: a.ListName}}
	case ClearList:
		return Record{ActionName: string(KindClearList), Parameters: Parameters{ListName: a.ListName}}
	}
	return Record{}
}

// Decode parses a JSON action record.
func Decode(data []byte) (Action, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding action: %w", err)
	}
	return FromRecord(r)
}

// ListName returns the list an action targets.
func ListName(a Action) string {
	return ToRecord(a).Parameters.ListName
}

// Items returns the items an action carries; nil for kinds without items.
func Items(a Action) []string {
	return ToRecord(a).Parameters.Items
}
