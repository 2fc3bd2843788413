package model

// Bounds is a window rectangle in screen coordinates.
type Bounds struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Window represents an open application window as returned by list_windows.
type Window struct {
	ID      string `yaml:"id"      json:"id"`
	Title   string `yaml:"title"   json:"title"`
	App     string `yaml:"app"     json:"app"`
	Bounds  Bounds `yaml:"bounds"  json:"bounds"`
	Display int    `yaml:"display" json:"display"`
}

// WindowList is the list_windows envelope.
type WindowList struct {
	Windows []Window `yaml:"windows" json:"windows"`
}

// WindowRef identifies a captured window.
type WindowRef struct {
	ID    string `yaml:"id"    json:"id"`
	Title string `yaml:"title" json:"title"`
	App   string `yaml:"app"   json:"app"`
}
