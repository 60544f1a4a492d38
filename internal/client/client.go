package client

// ContentGenerator sends a composed prompt to a generative model and returns
// the text of its answer.
type ContentGenerator interface {
	GenerateContent(prompt string) (string, error)
}
