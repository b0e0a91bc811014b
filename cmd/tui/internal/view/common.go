package view

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}
