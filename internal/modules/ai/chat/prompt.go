package chat

import (
	"fmt"

	"github.com/reusedev/meme-hub/internal/consts"
)

// BuildSystemPrompt tells the model to answer with exactly the two labelled lines
// ParseMeme looks for.
func BuildSystemPrompt(basicInstructions, imageSpecialInstructions string) string {
	formatInstructions := fmt.Sprintf("You are a meme generator with the following formatting instructions. "+
		"Each meme will consist of text that will appear at the top, and an image to go along with it. "+
		"The user will send you a message with a general theme or concept on which you will base the meme. "+
		"The user may choose to send you a text saying something like \"anything\" or \"whatever you want\", "+
		"or even no text at all, which you should not take literally, but take to mean they wish for you to come up with something yourself. "+
		"The memes don't necessarily need to start with the same pattern. "+
		"You must respond only in the format as described next, because your response will be parsed, so it is important it conforms to the format. "+
		"The first line of your response should be: '%s ' followed by the meme text. "+
		"The second line of your response should be: '%s ' followed by the image prompt text.",
		consts.MemeTextLabel, consts.ImagePromptLabel)
	basic := fmt.Sprintf("Next are instructions for the overall approach you should take to creating the memes. "+
		"Interpret as best as possible: %s", basicInstructions)
	special := fmt.Sprintf("Next are any special instructions for the image prompt. "+
		"For example, if the instructions are \"the images should be photographic style\", your prompt may append \", photograph\" at the end, or begin with \"photograph of\". "+
		"It does not have to literally match the instruction but interpret as best as possible: %s", imageSpecialInstructions)
	return formatInstructions + " " + basic + " " + special
}
