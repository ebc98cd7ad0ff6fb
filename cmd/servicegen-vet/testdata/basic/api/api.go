package api

type Plugin interface {
	Name() string
}
