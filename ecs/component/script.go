package component

// Script runs a tengo program against the entity's transform every tick.
// Params are exposed to the program as the `params` map.
type Script struct {
	Path   string
	Params map[string]float64
}

var ScriptComponent = NewComponent[Script]()
