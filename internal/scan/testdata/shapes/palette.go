package shapes

type Tone string

const (
	Light Tone = "light"
	Dark  Tone = "dark"
)
