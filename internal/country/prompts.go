package country

import (
	"fmt"
	"strings"

	"NewsPlatter/internal/domain"
)

var languageNames = map[string]string{
	"ar": "Arabic",
	"bn": "Bengali",
	"de": "German",
	"en": "English",
	"hi": "Hindi",
	"ko": "Korean",
	"ml": "Malayalam",
	"ro": "Romanian",
	"ru": "Russian",
	"tg": "Tajik",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"ur": "Urdu",
	"uz": "Uzbek",
	"zh": "Chinese",
}

// LanguageName renders a language code for prompts, e.g. "Korean (ko)".
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return fmt.Sprintf("%s (%s)", name, code)
	}
	return code
}

func categoryList() string {
	labels := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		labels[i] = string(c)
	}
	return strings.Join(labels, ", ")
}

// summarizationPrompt asks for a category and a short summary in the base
// language. withTitle adds an AI-authored headline to the expected format.
func summarizationPrompt(language, content string, withTitle bool) string {
	var b strings.Builder
	b.WriteString("You're a news editor and categorization assistant. Summarize and categorize the following article.\n")
	if withTitle {
		fmt.Fprintf(&b, "- Create a short, engaging %s title (1 line max) and do not reuse the original title\n", language)
	}
	fmt.Fprintf(&b, "- Write a brief summary in 2~3 lines in plain %s\n", language)
	fmt.Fprintf(&b, "- Determine the category of the article. Choose ONLY ONE from: %s\n", categoryList())
	b.WriteString("- Use a neutral, formal tone suitable for news articles\n")
	b.WriteString("- Avoid casual or conversational phrases\n")
	b.WriteString("- Respond in the exact format below:\n")
	b.WriteString("Category: <one of above>\n")
	if withTitle {
		b.WriteString("Title: <your new title>\n")
	}
	b.WriteString("Content: <your summary>\n\n")
	b.WriteString("If the content is not suitable for summarization (e.g., too short, incomplete, or lacks meaning), just return: SKIP\n\n")
	b.WriteString("Article:\n")
	b.WriteString(content)
	return b.String()
}

// translationPrompt builds the system instruction for one target language.
// glossRule describes how proper nouns keep their original form; examples is
// optional.
func translationPrompt(source, lang, glossRule, examples string) string {
	target := LanguageName(lang)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional news translator. Translate the following %s news title and summary into %s.\n\n", source, target)
	if glossRule != "" {
		b.WriteString(glossRule)
		b.WriteString("\n")
	}
	if examples != "" {
		fmt.Fprintf(&b, "\nExamples for %s:\n%s\n", target, examples)
	}
	fmt.Fprintf(&b, "\n- For the title, translate naturally in %s but keep it short and concise. Avoid using parentheses in the title.\n", target)
	b.WriteString("- Maintain a neutral, objective tone suitable for news articles.\n")
	b.WriteString("- Use formal language and avoid conversational tone.\n")
	b.WriteString("- Do not add any extra comments or labels.\n")
	fmt.Fprintf(&b, "- Use ONLY %s script in the translation.\n\n", target)
	b.WriteString("Return your response in this format:\n")
	b.WriteString("Title: <translated title>\n")
	b.WriteString("Content: <translated summary>\n")
	return b.String()
}

// topPrompt builds the selection rubric shared by every country.
func topPrompt(k int, audience string, criteria []string, mustFill bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert news editor working for %s.\n", audience)
	fmt.Fprintf(&b, "Select the top %d most important and engaging news articles from the list below.\n\n", k)
	b.WriteString("Selection criteria:\n")
	for _, c := range criteria {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("- Overall importance and public impact\n")
	b.WriteString("- Reader engagement potential\n")
	b.WriteString("- Avoid selecting multiple articles with very similar or identical titles\n\n")
	b.WriteString("IMPORTANT: You must respond with EXACTLY the Article ID as shown in the list below. Copy the exact ID format.\n")
	b.WriteString("Return ONLY the article IDs of the selected articles, one per line, nothing else.\n")
	if mustFill {
		fmt.Fprintf(&b, "You MUST select %d articles even if none match the regional criteria.\n", k)
	}
	return b.String()
}
