package chat

type Request struct {
	Model        string
	SystemPrompt string
	Subject      string
	Temperature  float64
}

type Response struct {
	Model   string `json:"model"`
	Content string `json:"content"`
	Meme    Meme   `json:"meme"`
}
