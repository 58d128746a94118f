package content

import "fmt"

const articlePromptTemplate = `<|system|>
You are a knowledgeable assistant that writes comprehensive, well-structured articles.
Your articles should be informative, engaging, and include relevant details and examples.

<|user|>
Write a detailed article about %[1]s. The article should include:
1. A clear introduction explaining what %[1]s is
2. Main concepts and key points about %[1]s
3. Current developments and real-world applications
4. Future implications and potential impact
5. A conclusion summarizing the key points

Make it engaging and informative while maintaining a professional tone.

<|assistant|>`

// ArticlePrompt builds the Zephyr chat prompt asking for an article on topic.
func ArticlePrompt(topic string) string {
	return fmt.Sprintf(articlePromptTemplate, topic)
}

// truncateForSentiment caps text at 512 characters, marking the cut with "...".
func truncateForSentiment(text string) string {
	runes := []rune(text)
	if len(runes) <= sentimentInputMaxRunes {
		return text
	}
	return string(runes[:sentimentInputMaxRunes]) + sentimentTruncatedSuffix
}
