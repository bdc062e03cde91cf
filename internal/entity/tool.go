package entity

import "github.com/bouwconnect/backend/pkg/enum"

type Tool string

var (
	MSProject = enum.New(Tool("msproject"))
	AutoCAD   = enum.New(Tool("autocad"))
	Revit     = enum.New(Tool("revit"))
	Asta      = enum.New(Tool("asta"))
	Solibri   = enum.New(Tool("solibri"))
	Excel     = enum.New(Tool("excel"))
	WhatsApp  = enum.New(Tool("whatsapp"))
	Bluebeam  = enum.New(Tool("bluebeam"))
)

// Tools returns every supported tool in a stable order.
func Tools() []Tool {
	return enum.Values[Tool]()
}

func (t Tool) String() string {
	return string(t)
}
